package shared_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fetch-examples/internal/tui/shared"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.FormatDuration(0)).Should(Equal("0.0s"))
	g.Expect(shared.FormatDuration(-time.Second)).Should(Equal("0.0s"))
	g.Expect(shared.FormatDuration(1500 * time.Millisecond)).Should(Equal("1.5s"))
	g.Expect(shared.FormatDuration(30 * time.Second)).Should(Equal("30s"))
	g.Expect(shared.FormatDuration(150 * time.Second)).Should(Equal("2m 30s"))
	g.Expect(shared.FormatDuration(time.Hour + 2*time.Minute + 3*time.Second)).Should(Equal("1h 2m 3s"))
}
