package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// DefaultConnectTimeout bounds a single connection attempt when the
// configuration does not specify one.
const DefaultConnectTimeout = 10 * time.Second

// connectKey is the single-flight key shared by all connection attempts.
const connectKey = "connect"

// Dialer opens a client for uri and verifies it can serve requests.
// It must honor ctx for cancellation and timeouts.
type Dialer func(ctx context.Context, uri string) (*mongo.Client, error)

// ConnectHook runs once after each successful connection attempt, before the
// session is published to callers. Its error is logged and otherwise ignored.
type ConnectHook func(ctx context.Context, session *Session) error

// Session is the live, reusable handle used to issue database operations.
type Session struct {
	client *mongo.Client
	dbName string
}

// Client returns the underlying driver client.
func (s *Session) Client() *mongo.Client {
	return s.client
}

// Database returns the application database.
func (s *Session) Database() *mongo.Database {
	return s.client.Database(s.dbName)
}

// Collection returns the named collection in the application database.
func (s *Session) Collection(name string) *mongo.Collection {
	return s.Database().Collection(name)
}

// Ping checks that the primary is reachable through this session.
func (s *Session) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// ProviderConfig holds the settings for a Provider.
type ProviderConfig struct {
	// URI is the connection string. An empty URI makes Acquire fail with
	// store.ErrConfigurationMissing.
	URI string

	// Database is the name of the application database.
	Database string

	// ConnectTimeout bounds each connection attempt. Zero means DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// Dial replaces the default driver connection. Used by tests.
	Dial Dialer

	// OnConnect runs after a successful connection, e.g. to ensure indexes.
	OnConnect ConnectHook
}

// Provider owns the process-wide database session.
//
// The session moves from absent to pending when the first caller asks for it,
// and from pending to ready once the connection attempt succeeds. A failed
// attempt returns the provider to absent so a later call can retry. However
// many callers arrive concurrently, at most one attempt is in flight; all of
// them wait for it and observe the same outcome. Once closed, the provider
// never publishes a session again.
type Provider struct {
	uri       string
	dbName    string
	timeout   time.Duration
	dial      Dialer
	onConnect ConnectHook
	logger    *slog.Logger

	mu      sync.RWMutex
	session *Session
	closed  bool

	group singleflight.Group
}

// NewProvider creates a Provider. No I/O happens until the first Acquire.
// If logger is nil, a default logger will be used.
func NewProvider(cfg ProviderConfig, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	dial := cfg.Dial
	if dial == nil {
		dial = dialMongo
	}

	return &Provider{
		uri:       cfg.URI,
		dbName:    cfg.Database,
		timeout:   timeout,
		dial:      dial,
		onConnect: cfg.OnConnect,
		logger:    logger.With(slog.String("component", "mongodb_provider")),
	}
}

// Configured reports whether a connection URI is set.
func (p *Provider) Configured() bool {
	return p.uri != ""
}

// Acquire returns the ready session, connecting first if necessary.
//
// Returns store.ErrConfigurationMissing when no URI is configured and an error
// wrapping store.ErrConnectionFailed when the shared attempt fails or times out.
// After Close it returns store.ErrClosed.
// If ctx ends while waiting, Acquire returns ctx.Err() and the attempt keeps
// running for the remaining waiters.
func (p *Provider) Acquire(ctx context.Context) (*Session, error) {
	if session := p.ready(); session != nil {
		return session, nil
	}

	if p.isClosed() {
		return nil, store.ErrClosed
	}

	if !p.Configured() {
		p.logger.WarnContext(ctx, "database connection requested but no URI is configured")
		return nil, store.ErrConfigurationMissing
	}

	ch := p.group.DoChan(connectKey, p.connect)

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Session), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ping acquires the session and checks that the primary still answers.
func (p *Provider) Ping(ctx context.Context) error {
	session, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := session.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", store.ErrUnavailable, err)
	}
	return nil
}

// Close disconnects the ready session, if any. An attempt still in flight
// disconnects its own client when it finishes instead of publishing it.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	session := p.session
	p.session = nil
	p.closed = true
	p.mu.Unlock()

	if session == nil {
		return nil
	}

	if err := session.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from database: %w", err)
	}

	p.logger.Info("database connection closed")
	return nil
}

func (p *Provider) ready() *Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session
}

func (p *Provider) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// connect runs inside the single flight. It is detached from any caller's
// context so one cancelled request cannot fail the attempt for the others.
func (p *Provider) connect() (interface{}, error) {
	// A previous flight may have finished between the caller's check and now.
	if session := p.ready(); session != nil {
		return session, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	p.logger.Info("connecting to database", slog.String("database", p.dbName))

	client, err := p.dial(ctx, p.uri)
	if err != nil {
		p.logger.Error("failed to connect to database",
			slog.String("error", redactedError(err)),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: %w", store.ErrConnectionFailed, err)
	}

	session := &Session{client: client, dbName: p.dbName}

	if p.onConnect != nil {
		if err := p.onConnect(ctx, session); err != nil {
			p.logger.Warn("post-connect hook failed",
				slog.String("error", redactedError(err)))
		}
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Info("provider closed during connection attempt, discarding client")
		if err := client.Disconnect(context.Background()); err != nil {
			p.logger.Debug("disconnect of discarded client failed",
				slog.String("error", redactedError(err)))
		}
		return nil, store.ErrClosed
	}
	p.session = session
	p.mu.Unlock()

	p.logger.Info("connected to database",
		slog.String("database", p.dbName),
		slog.Duration("elapsed", time.Since(start)))
	return session, nil
}

// dialMongo connects with the driver and pings the primary, disconnecting
// again when the ping fails.
func dialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	deadline, ok := ctx.Deadline()
	opts := options.Client().ApplyURI(uri)
	if ok {
		remaining := time.Until(deadline)
		opts.SetConnectTimeout(remaining).SetServerSelectionTimeout(remaining)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
