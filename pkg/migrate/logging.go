package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/giftlist-backend/pkg/logger"
	"github.com/pressly/goose/v3"
)

// gooseLogger sends goose progress lines through the service logger. Fatalf
// does not exit; goose still returns the error to the caller.
type gooseLogger struct {
	ctx  context.Context
	logg *logger.Logger
}

func (g gooseLogger) Printf(format string, args ...any) {
	g.logg.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (g gooseLogger) Fatalf(format string, args ...any) {
	g.logg.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, args...)), nil)
}

// UseLogger routes goose output through logg with ctx's fields.
func UseLogger(ctx context.Context, logg *logger.Logger) {
	if logg == nil {
		return
	}
	goose.SetLogger(gooseLogger{ctx: logg.WithField(ctx, "component", "goose"), logg: logg})
}
