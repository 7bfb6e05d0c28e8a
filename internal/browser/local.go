package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/port"
)

// LocalProvider starts a headless Chrome on this machine. Same PageSession
// contract as the remote provider; there is no viewer URL.
type LocalProvider struct {
	cfg config.BrowserConfig
}

// NewLocalProvider creates a local headless provider.
func NewLocalProvider(cfg *config.BrowserConfig) *LocalProvider {
	return &LocalProvider{cfg: *cfg}
}

func (p *LocalProvider) NewSession(ctx context.Context) (port.PageSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(taskCtx); err != nil {
		taskCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: starting local browser: %v", domain.ErrBrowserConnect, err)
	}

	return &pageSession{
		taskCtx:    taskCtx,
		cancels:    []context.CancelFunc{taskCancel, allocCancel},
		sessionID:  "local-" + uuid.NewString(),
		navTimeout: p.cfg.NavigationTimeout,
		settle:     p.cfg.SettleDelay,
	}, nil
}
