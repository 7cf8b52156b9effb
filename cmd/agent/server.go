package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tradeagent/conf"
	"tradeagent/pkg/logger"
	"tradeagent/pkg/validator"
)

const shutdownTimeout = 5 * time.Second

// Router 加载路由，使用侧提供接口，实现侧需要实现该接口
type Router interface {
	Load(engine *gin.Engine)
}

type Server struct {
	config     *conf.Config
	onShutdown []func()
}

func NewServer(c *conf.Config) *Server {
	return &Server{config: c}
}

// RegisterOnShutdown 关闭后按注册顺序执行，用于释放数据库等资源
func (s *Server) RegisterOnShutdown(f func()) {
	s.onShutdown = append(s.onShutdown, f)
}

// Run 阻塞直到收到 SIGINT/SIGTERM 或监听失败
func (s *Server) Run(rs ...Router) error {
	if s.config.Mode != "" {
		gin.SetMode(s.config.Mode)
	}
	// binding 校验器要在路由处理请求之前替换
	validator.LazyInitGinValidator(s.config.Language)

	g := gin.New()
	for _, r := range rs {
		r.Load(g)
	}

	srv := &http.Server{
		Addr:              s.config.Listen,
		Handler:           g,
		ReadHeaderTimeout: 10 * time.Second,
	}
	for _, f := range s.onShutdown {
		srv.RegisterOnShutdown(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	go func() {
		if err := Ping(ctx, s.config.Listen, s.config.MaxPingCount); err != nil {
			logger.Error("server no response", logger.Pair("err", err.Error()))
			stop()
			return
		}
		logger.Info("server started", logger.Pair("listen", s.config.Listen))
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.config.Listen, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server shutdown", logger.Pair("listen", s.config.Listen))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Ping 轮询本机 /ping，确认服务已经可以接收请求
func Ping(ctx context.Context, listen string, maxCount int) error {
	if listen == "" {
		return errors.New("listen address is empty")
	}
	_, port, err := net.SplitHostPort(listen)
	if err != nil {
		port = listen
	}
	url := fmt.Sprintf("http://127.0.0.1:%s/ping", port)
	client := &http.Client{Timeout: time.Second}

	for i := 1; i <= maxCount; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if resp, err := client.Do(req); err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		logger.Infof("等待服务在线, 已等待 %d 秒，最多等待 %d 秒", i, maxCount)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("服务启动失败，端口 %s", port)
}
