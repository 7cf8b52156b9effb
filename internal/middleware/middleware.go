package middleware

import "github.com/gin-gonic/gin"

// Middleware 全局中间件，和业务路由一样通过 Load 挂载
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func (m *Middleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery(), RequestId(), Logger, NoCache(), Options(), Secure())
}
