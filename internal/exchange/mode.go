package exchange

// Mode 执行模式
type Mode string

const (
	// 模拟盘，本地撮合
	ModeSimulate Mode = "simulate"
	// 实盘，交给外部交易所
	ModeLive Mode = "live"
)

func ModeFromPaperTrading(paper bool) Mode {
	if paper {
		return ModeSimulate
	}
	return ModeLive
}
