package redisx_test

import (
	"testing"
	"time"

	"github.com/ariefcatur/go-storefront-api.git/internal/redisx"
)

func TestNewAppliesTimeouts(t *testing.T) {
	c := redisx.New("redis:6379")
	defer c.Close()

	opts := c.Options()
	if opts.Addr != "redis:6379" {
		t.Fatalf("addr: %s", opts.Addr)
	}
	if opts.ReadTimeout != 2*time.Second {
		t.Fatalf("read timeout not applied: %v", opts.ReadTimeout)
	}
	if opts.WriteTimeout != 2*time.Second {
		t.Fatalf("write timeout not applied: %v", opts.WriteTimeout)
	}
	if opts.DialTimeout != 2*time.Second {
		t.Fatalf("dial timeout not applied: %v", opts.DialTimeout)
	}
}
