package util

import (
	"os/exec"
	"runtime"
)

// linuxFallbackBrowsers xdg-open 失败时依次尝试的浏览器
var linuxFallbackBrowsers = []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}

// browserCommand 返回指定平台打开 url 的命令
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		// rundll32 方式在 Windows 7 上比 cmd /c start 稳定
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// OpenBrowser 打开默认浏览器
func OpenBrowser(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Start()
}

// OpenBrowserWithFallback 主要方式失败时尝试备选方式
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		return exec.Command("explorer", url).Start()
	case "linux":
		for _, browser := range linuxFallbackBrowsers {
			if err := exec.Command(browser, url).Start(); err == nil {
				return nil
			}
		}
	}

	return err
}
