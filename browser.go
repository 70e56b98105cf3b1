//go:build !unittest

package trends

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// InitSession launches a headless Chrome instance with stealth mode, visits
// the Creative Center so the site issues session cookies, and syncs them to
// the HTTP client. The browser stays open so ensureSession can refresh a
// rejected session later.
func (c *Collector) InitSession() error {
	c.browserMu.Lock()
	defer c.browserMu.Unlock()
	return c.launchBrowser()
}

func (c *Collector) launchBrowser() error {
	l := launcher.New().Headless(true)
	if c.proxy != "" {
		l = l.Proxy(c.proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return fmt.Errorf("create stealth page: %w", err)
	}

	c.browser = browser
	c.page = page

	c.setupResourceBlocking()

	landing := c.baseURL + "/business/creativecenter/inspiration/popular/hashtag/pc/en"
	if err := c.page.Navigate(landing); err != nil {
		return fmt.Errorf("navigate to creative center: %w", err)
	}
	if err := c.page.WaitStable(2 * time.Second); err != nil {
		return fmt.Errorf("wait for page stable: %w", err)
	}

	if err := c.syncCookiesFromBrowser(); err != nil {
		return err
	}
	c.sessionReady.Store(true)
	return nil
}

func (c *Collector) setupResourceBlocking() {
	router := c.browser.HijackRequests()
	blocked := []string{"*.css", "*.png", "*.jpg", "*.jpeg", "*.mp4", "*.woff*", "*.svg", "*analytics*"}
	for _, pattern := range blocked {
		router.MustAdd(pattern, func(ctx *rod.Hijack) {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		})
	}
	go router.Run()
}

// syncCookiesFromBrowser copies the browser's cookies into the HTTP client
// jar so list API requests carry the same session.
func (c *Collector) syncCookiesFromBrowser() error {
	browserCookies, err := c.browser.GetCookies()
	if err != nil {
		return fmt.Errorf("get browser cookies: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(browserCookies))
	for _, bc := range browserCookies {
		cookies = append(cookies, &http.Cookie{
			Name:   bc.Name,
			Value:  bc.Value,
			Domain: bc.Domain,
			Path:   bc.Path,
		})
	}
	c.SetCookies(cookies)
	return nil
}

// ensureSession revisits the Creative Center and re-syncs cookies. Called
// when the API starts rejecting the current session.
func (c *Collector) ensureSession() error {
	c.browserMu.Lock()
	defer c.browserMu.Unlock()

	if c.page == nil {
		return ErrBrowserNotReady
	}
	if err := c.page.Reload(); err != nil {
		return fmt.Errorf("reload for session: %w", err)
	}
	if err := c.page.WaitStable(2 * time.Second); err != nil {
		return fmt.Errorf("wait after reload: %w", err)
	}
	if err := c.syncCookiesFromBrowser(); err != nil {
		return err
	}
	c.sessionReady.Store(true)
	return nil
}

func (c *Collector) closeBrowser() error {
	if c.page != nil {
		if err := c.page.Close(); err != nil {
			return fmt.Errorf("close page: %w", err)
		}
		c.page = nil
	}
	if c.browser != nil {
		if err := c.browser.Close(); err != nil {
			return fmt.Errorf("close browser: %w", err)
		}
		c.browser = nil
	}
	return nil
}
