package ports_test

import (
	"testing"

	mocks "github.com/jobdesk/jobdesk-go/internal/mocks/auth"
	"github.com/jobdesk/jobdesk-go/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthGateway = (*mocks.MockGateway)(nil)
	var _ ports.TokenStore = (*mocks.MemoryTokenStore)(nil)
}
