package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"

	"formpilot/internal/domain"
)

// pageSession drives one attached page over CDP. Values are written through
// the element's prototype setter followed by input/change events: framework-
// managed inputs only notice a value set that way, and date inputs ignore
// synthetic keystrokes entirely.
type pageSession struct {
	taskCtx    context.Context
	cancels    []context.CancelFunc
	sessionID  string
	viewerURL  string
	navTimeout time.Duration
	settle     time.Duration
}

// run executes chromedp actions. Actions only work on a context descending
// from the session's chromedp context, so the caller's deadline is copied
// onto it instead of using the caller's context directly.
func (s *pageSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx := s.taskCtx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.taskCtx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (s *pageSession) Navigate(ctx context.Context, url string) error {
	if s.navTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.navTimeout)
		defer cancel()
	}

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if s.settle > 0 {
		actions = append(actions, chromedp.Sleep(s.settle))
	}
	if err := s.run(ctx, actions...); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrNavigation, url, err)
	}
	return nil
}

func (s *pageSession) Content(ctx context.Context) (string, error) {
	var html string
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("capturing page content: %w", err)
	}
	return html, nil
}

func (s *pageSession) Count(ctx context.Context, selector string) (int, error) {
	var count int
	script := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
	if err := s.run(ctx, chromedp.Evaluate(script, &count)); err != nil {
		return 0, fmt.Errorf("counting %s: %w", selector, err)
	}
	return count, nil
}

func (s *pageSession) Fill(ctx context.Context, selector, value string) error {
	var ok bool
	if err := s.run(ctx, chromedp.Evaluate(fillScript(selector, value), &ok)); err != nil {
		return fmt.Errorf("filling %s: %w", selector, err)
	}
	if !ok {
		return fmt.Errorf("filling %s: element not found", selector)
	}
	return nil
}

func (s *pageSession) SelectOption(ctx context.Context, selector, value string) error {
	var status string
	if err := s.run(ctx, chromedp.Evaluate(selectScript(selector, value), &status)); err != nil {
		return fmt.Errorf("selecting in %s: %w", selector, err)
	}
	switch status {
	case "ok":
		return nil
	case "no-option":
		return fmt.Errorf("selecting in %s: no option with value %q", selector, value)
	default:
		return fmt.Errorf("selecting in %s: element not found", selector)
	}
}

// Check clicks the element and verifies it ended up checked. Overlaid labels
// swallow clicks on some forms; in that case the checked property is set
// directly and the change event fired by hand.
func (s *pageSession) Check(ctx context.Context, selector string) error {
	checked, err := s.isChecked(ctx, selector)
	if err != nil {
		return err
	}
	if checked {
		return nil
	}

	if err := s.run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err == nil {
		if checked, err = s.isChecked(ctx, selector); err == nil && checked {
			return nil
		}
	}

	var ok bool
	if err := s.run(ctx, chromedp.Evaluate(forceCheckScript(selector), &ok)); err != nil {
		return fmt.Errorf("checking %s: %w", selector, err)
	}
	if !ok {
		return fmt.Errorf("checking %s: element not found", selector)
	}
	return nil
}

func (s *pageSession) isChecked(ctx context.Context, selector string) (bool, error) {
	var checked bool
	script := fmt.Sprintf(`(function() { var el = document.querySelector(%q); return !!el && !!el.checked; })()`, selector)
	if err := s.run(ctx, chromedp.Evaluate(script, &checked)); err != nil {
		return false, fmt.Errorf("reading checked state of %s: %w", selector, err)
	}
	return checked, nil
}

func (s *pageSession) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return nil, fmt.Errorf("taking screenshot: %w", err)
	}
	return buf, nil
}

func (s *pageSession) Close(ctx context.Context) error {
	for _, cancel := range s.cancels {
		cancel()
	}
	return nil
}

func (s *pageSession) SessionID() string { return s.sessionID }
func (s *pageSession) ViewerURL() string { return s.viewerURL }

func fillScript(selector, value string) string {
	return fmt.Sprintf(`(function() {
	var el = document.querySelector(%q);
	if (!el) { return false; }
	var proto = el.tagName === 'TEXTAREA' ? window.HTMLTextAreaElement.prototype : window.HTMLInputElement.prototype;
	var desc = Object.getOwnPropertyDescriptor(proto, 'value');
	if (desc && desc.set) { desc.set.call(el, %q); } else { el.value = %q; }
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`, selector, value, value)
}

func selectScript(selector, value string) string {
	return fmt.Sprintf(`(function() {
	var el = document.querySelector(%q);
	if (!el || !el.options) { return "missing"; }
	var match = Array.prototype.find.call(el.options, function(o) { return o.value === %q; });
	if (!match) { return "no-option"; }
	el.value = %q;
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return "ok";
})()`, selector, value, value)
}

func forceCheckScript(selector string) string {
	return fmt.Sprintf(`(function() {
	var el = document.querySelector(%q);
	if (!el) { return false; }
	el.checked = true;
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`, selector)
}
