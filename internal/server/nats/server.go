// Package nats binds the auth service to its broker subjects. It owns the
// connection, the JSON envelope codec, and the mapping from service errors
// to wire status codes.
package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sethvargo/go-retry"

	"github.com/nestjs-store-microservices/auth-ms/internal/logging"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/users"
)

// Subjects handled by this service. The names are part of the deployment-wide
// messaging contract and must not change without coordinating the gateway.
const (
	SubjectRegister = "auth.register.user"
	SubjectLogin    = "auth.login.user"
	SubjectLogout   = "auth.logout.user"
	SubjectVerify   = "auth.verify.token"
)

type authSvc interface {
	Register(ctx context.Context, req *users.RegisterRequest) (*users.AuthResult, error)
	Login(ctx context.Context, email, password string) (*users.AuthResult, error)
	Logout(ctx context.Context) string
	VerifyAndRenew(ctx context.Context, token string) (*users.AuthResult, error)
}

type Server struct {
	url        string
	queueGroup string
	auth       authSvc
	logger     logging.Logger
	conn       *nats.Conn
}

func NewServer(url, queueGroup string, svc authSvc, l logging.Logger) *Server {
	return &Server{
		url:        url,
		queueGroup: queueGroup,
		auth:       svc,
		logger:     l.With("module", "nats_server"),
	}
}

// connect dials the broker with capped exponential backoff so the service
// survives starting before the broker does.
func (s *Server) connect(ctx context.Context) error {
	backoff := retry.WithMaxDuration(time.Minute, retry.NewExponential(time.Second))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		conn, err := nats.Connect(s.url)
		if err != nil {
			s.logger.Warn(ctx, "Broker not ready, retrying", "error", err.Error())
			return retry.RetryableError(err)
		}
		s.conn = conn
		return nil
	})
}

// Run connects, subscribes the four auth subjects on the configured queue
// group and blocks until ctx is cancelled, then drains the connection.
func (s *Server) Run(ctx context.Context) error {

	if err := s.connect(ctx); err != nil {
		return err
	}

	handlers := map[string]func(context.Context, []byte) any{
		SubjectRegister: s.register,
		SubjectLogin:    s.login,
		SubjectLogout:   s.logout,
		SubjectVerify:   s.verify,
	}

	for subject, handle := range handlers {
		handle := handle
		if _, err := s.conn.QueueSubscribe(subject, s.queueGroup, func(msg *nats.Msg) {
			s.respond(ctx, msg, handle(ctx, msg.Data))
		}); err != nil {
			return err
		}
	}

	s.logger.Info(ctx, "Listening on broker", "url", s.url, "queue", s.queueGroup)

	<-ctx.Done()
	s.logger.Info(ctx, "Stopping NATS server...")

	return s.conn.Drain()
}

func (s *Server) respond(ctx context.Context, msg *nats.Msg, reply any) {
	data, err := json.Marshal(reply)
	if err != nil {
		s.logger.Error(ctx, "Reply encode error", "subject", msg.Subject, "error", err.Error())
		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Error(ctx, "Reply send error", "subject", msg.Subject, "error", err.Error())
	}
}
