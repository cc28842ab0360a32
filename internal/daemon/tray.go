//go:build windows

package daemon

import (
	"context"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"github.com/username/calendar-heatmap/internal/gradient"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	mbOK              = 0x00000000
	mbIconInformation = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon   *Daemon
	logger   *zap.Logger
	quit     chan struct{}
	stopOnce sync.Once
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run(ctx context.Context) {
	systray.Run(func() { t.onReady(ctx) }, t.onExit)
}

func (t *TrayApp) onReady(ctx context.Context) {
	if icon, err := heatmapIcon(gradient.Green); err != nil {
		t.logger.Warn("Failed to build tray icon", zap.Error(err))
	} else {
		systray.SetIcon(icon)
	}
	systray.SetTitle("Heatmap")
	systray.SetTooltip("Calendar heatmap")

	mRender := systray.AddMenuItem("Render now", "Render the heatmap immediately")
	systray.AddSeparator()
	mStatus := systray.AddMenuItem("Status", "Show last and next render")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start daemon logic in background
	go t.daemon.runScheduledLogic(ctx)

	go func() {
		for {
			select {
			case <-mRender.ClickedCh:
				t.logger.Info("Render now clicked from tray")
				go t.daemon.RenderNow()
			case <-mStatus.ClickedCh:
				t.logger.Info("Status clicked from tray")
				t.showStatus()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.stopOnce.Do(func() { close(t.quit) })
}

// ShowNotification updates the tooltip; fyne.io/systray has no balloon notifications
func (t *TrayApp) ShowNotification(title, message string) {
	t.logger.Info("Notification", zap.String("title", title), zap.String("message", message))
	systray.SetTooltip(fmt.Sprintf("%s: %s", title, message))
}

func (t *TrayApp) showStatus() {
	status := t.daemon.GetStatus()
	t.logger.Info("Current status",
		zap.String("last_run_date", status.LastRunDate),
		zap.Time("next_run", status.NextRun))

	last := "never"
	if status.LastRunDate != "" {
		last = status.LastRunTime.Format("2006-01-02 15:04")
	}
	message := fmt.Sprintf("Last render: %s\nNext render: %s", last, status.NextRun.Format("2006-01-02 15:04"))
	if status.LastError != nil {
		message += fmt.Sprintf("\nLast error: %v", status.LastError)
	}

	showMessageBox("Calendar Heatmap", message)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(mbOK|mbIconInformation),
	)
}
