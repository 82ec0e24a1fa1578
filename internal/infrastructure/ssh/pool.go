package ssh

import (
	"sync"
)

// Conn is what callers use from a pooled connection.
type Conn interface {
	Run(cmd string) (stdout, stderr string, err error)
	ReadFile(remotePath string) (content []byte, exists bool, err error)
	WriteFileAtomic(remotePath string, content []byte) error
	Close() error
}

type ConnFactory func(cfg Config) (Conn, error)

// Pool keeps one connection per user@host:port for the length of a run.
// Close on a pooled Conn is a no-op; CloseAll releases the connections.
type Pool struct {
	clients map[string]Conn
	mu      sync.RWMutex
	factory ConnFactory
}

func NewPool() *Pool {
	return NewPoolWithFactory(func(cfg Config) (Conn, error) {
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
}

func NewPoolWithFactory(factory ConnFactory) *Pool {
	return &Pool{
		clients: make(map[string]Conn),
		factory: factory,
	}
}

func poolKey(cfg Config) string {
	return cfg.User + "@" + cfg.addr()
}

// Get returns the shared connection for cfg. A nil pool dials a fresh
// connection owned by the caller.
func (p *Pool) Get(cfg Config) (Conn, error) {
	if p == nil {
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	key := poolKey(cfg)

	p.mu.RLock()
	if conn, ok := p.clients[key]; ok && alive(conn) {
		p.mu.RUnlock()
		return shared{conn}, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.clients[key]; ok {
		if alive(conn) {
			return shared{conn}, nil
		}
		_ = conn.Close()
		delete(p.clients, key)
	}

	conn, err := p.factory(cfg)
	if err != nil {
		return nil, err
	}
	p.clients[key] = conn
	return shared{conn}, nil
}

func (p *Pool) CloseAll() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, conn := range p.clients {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.clients = make(map[string]Conn)
	return firstErr
}

func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.clients)
}

// alive reports false only for connections that can probe themselves and
// fail to.
func alive(conn Conn) bool {
	if p, ok := conn.(interface{ Alive() bool }); ok {
		return p.Alive()
	}
	return true
}

type shared struct {
	Conn
}

func (shared) Close() error { return nil }
