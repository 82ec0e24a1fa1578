package ssh

import (
	"errors"
	"sync"
	"testing"
)

type mockConn struct {
	closed int
}

func (m *mockConn) Run(cmd string) (string, string, error) { return "", "", nil }

func (m *mockConn) ReadFile(string) ([]byte, bool, error) { return nil, false, nil }

func (m *mockConn) WriteFileAtomic(string, []byte) error { return nil }

func (m *mockConn) Close() error {
	m.closed++
	return nil
}

func TestPool_SharesConnectionPerTarget(t *testing.T) {
	var dials int
	var conns []*mockConn
	pool := NewPoolWithFactory(func(cfg Config) (Conn, error) {
		dials++
		c := &mockConn{}
		conns = append(conns, c)
		return c, nil
	})

	router := Config{Host: "192.168.1.1", User: "root"}
	c1, err := pool.Get(router)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c2, _ := pool.Get(Config{Host: "192.168.1.1", Port: 22, User: "root"})
	_, _ = pool.Get(Config{Host: "192.168.1.1", Port: 2222, User: "root"})

	if dials != 2 || pool.Size() != 2 {
		t.Fatalf("dials = %d, size = %d, want 2 and 2", dials, pool.Size())
	}

	_ = c1.Close()
	_ = c2.Close()
	if conns[0].closed != 0 {
		t.Error("closing a pooled conn must not close the connection")
	}

	if err := pool.CloseAll(); err != nil {
		t.Fatalf("CloseAll() error = %v", err)
	}
	if conns[0].closed != 1 || conns[1].closed != 1 || pool.Size() != 0 {
		t.Errorf("after CloseAll: closed = %d/%d, size = %d", conns[0].closed, conns[1].closed, pool.Size())
	}
}

func TestPool_DialErrorNotCached(t *testing.T) {
	fail := true
	pool := NewPoolWithFactory(func(cfg Config) (Conn, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return &mockConn{}, nil
	})

	cfg := Config{Host: "h", User: "u"}
	if _, err := pool.Get(cfg); err == nil {
		t.Fatal("expected dial error")
	}
	fail = false
	if _, err := pool.Get(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Size() != 1 {
		t.Errorf("size = %d, want 1", pool.Size())
	}
}

func TestPool_Concurrency(t *testing.T) {
	pool := NewPoolWithFactory(func(cfg Config) (Conn, error) {
		return &mockConn{}, nil
	})
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Get(Config{Host: "h", User: "u"})
		}()
	}
	wg.Wait()

	if pool.Size() != 1 {
		t.Errorf("size = %d, want 1", pool.Size())
	}
}

func TestPool_NilCloseAll(t *testing.T) {
	var pool *Pool
	if err := pool.CloseAll(); err != nil {
		t.Errorf("CloseAll() on nil pool = %v", err)
	}
}

type probedConn struct {
	mockConn
	dead bool
}

func (p *probedConn) Alive() bool { return !p.dead }

func TestPool_RedialsDeadConnection(t *testing.T) {
	var conns []*probedConn
	pool := NewPoolWithFactory(func(cfg Config) (Conn, error) {
		c := &probedConn{}
		conns = append(conns, c)
		return c, nil
	})
	cfg := Config{Host: "router", User: "root"}

	if _, err := pool.Get(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	conns[0].dead = true
	if _, err := pool.Get(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(conns) != 2 {
		t.Fatalf("dials = %d, want 2", len(conns))
	}
	if conns[0].closed != 1 {
		t.Errorf("dead connection closed %d times, want 1", conns[0].closed)
	}
	if pool.Size() != 1 {
		t.Errorf("size = %d, want 1", pool.Size())
	}
}
