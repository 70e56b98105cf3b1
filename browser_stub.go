//go:build unittest

package trends

import "fmt"

func (c *Collector) InitSession() error {
	return fmt.Errorf("browser: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (c *Collector) launchBrowser() error {
	return fmt.Errorf("browser: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (c *Collector) setupResourceBlocking() {}

func (c *Collector) syncCookiesFromBrowser() error {
	return ErrBrowserNotReady
}

func (c *Collector) ensureSession() error {
	if c.sessionReady.Load() {
		return nil
	}
	return ErrBrowserNotReady
}

func (c *Collector) closeBrowser() error {
	c.page = nil
	c.browser = nil
	return nil
}
