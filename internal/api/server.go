package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cakeries-backend/internal/auth"
	"cakeries-backend/internal/metrics"
	"cakeries-backend/internal/payment"
	"cakeries-backend/internal/store"
)

type TokenIssuer interface {
	auth.Verifier
	Sign(email string) (string, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, totalPrice float64) (payment.Intent, error)
	Confirm(ctx context.Context, c payment.Confirmation) (store.UpdateResult, error)
}

type RoleInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Store    store.Store
	Roles    auth.RoleLookup
	Tokens   TokenIssuer
	Payments PaymentService
	Log      zerolog.Logger

	// Optional. Ready defaults to Store when it implements Pinger.
	Ready       Pinger
	RoleCache   RoleInvalidator
	ServiceName string
	CORSOrigins string
	Middleware  []gin.HandlerFunc
}

type Server struct {
	store     store.Store
	roles     auth.RoleLookup
	tokens    TokenIssuer
	payments  PaymentService
	roleCache RoleInvalidator
	ready     Pinger
	log       zerolog.Logger
}

func NewRouter(d Deps) *gin.Engine {
	s := &Server{
		store:     d.Store,
		roles:     d.Roles,
		tokens:    d.Tokens,
		payments:  d.Payments,
		roleCache: d.RoleCache,
		ready:     d.Ready,
		log:       d.Log,
	}
	if s.roles == nil {
		s.roles = d.Store
	}
	if p, ok := d.Store.(Pinger); ok && s.ready == nil {
		s.ready = p
	}

	r := gin.New()
	r.Use(requestID(), requestLogger(d.Log), gin.Recovery())
	r.Use(metrics.Middleware(d.ServiceName))
	r.Use(corsMiddleware(d.CORSOrigins))
	r.Use(d.Middleware...)

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Running Cakeries server") })
	r.GET("/metrics", metrics.Handler())
	r.GET("/health/ready", s.readiness)

	authn := auth.Authenticate(d.Tokens)
	admin := auth.RequireAdmin(s.roles)

	// Users
	r.PUT("/user/:email", s.upsertUser)
	r.GET("/user", authn, s.listUsers)
	r.GET("/admin/:email", authn, s.checkAdmin)
	r.PUT("/user/admin/:email", authn, admin, s.makeAdmin)

	// Orders
	r.POST("/orders", s.createOrder)
	r.GET("/orders", authn, s.listOrders)
	r.GET("/orders/:id", authn, s.getOrder)
	r.DELETE("/orders/:id", authn, s.cancelOrder)
	r.PATCH("/orders/:id", authn, s.confirmPayment)

	// Payments
	r.POST("/create-payment-intent", authn, s.createPaymentIntent)
	r.GET("/payments/:orderId", authn, admin, s.listPayments)

	// Products
	r.GET("/product", s.listProducts)
	r.GET("/product/:id", s.getProduct)
	r.PUT("/product/:id", authn, s.updateStock)
	r.POST("/product", authn, admin, s.createProduct)
	r.DELETE("/product/:id", authn, admin, s.deleteProduct)

	// Reviews and profiles
	r.GET("/review", s.listReviews)
	r.POST("/review", authn, s.createReview)
	r.GET("/userProfile/:email", authn, s.getProfile)
	r.PUT("/userProfile/:email", authn, s.upsertProfile)

	return r
}

// readiness answers 503 while the database cannot be reached.
func (s *Server) readiness(c *gin.Context) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready.Ping(ctx); err != nil {
			s.log.Warn().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func corsMiddleware(origins string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	var list []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			list = append(list, o)
		}
	}
	if len(list) == 0 || (len(list) == 1 && list[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = list
	}
	return cors.New(cfg)
}
