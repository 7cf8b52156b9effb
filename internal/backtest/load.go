package backtest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"tradeagent/internal/model"
)

// LoadAlerts 支持 JSON 数组或每行一个 JSON 对象
func LoadAlerts(path string) ([]model.Alert, error) {
	return load[model.Alert](path)
}

// LoadKlines K线按时间从旧到新
func LoadKlines(path string) ([]model.Kline, error) {
	return load[model.Kline](path)
}

func load[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return list, nil
	}

	var list []T
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line, err)
		}
		list = append(list, v)
	}
	return list, sc.Err()
}
