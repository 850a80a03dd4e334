// internal/platform/ui/noop_presenter.go
package ui

import "time"

// NoopPresenter no produce ninguna salida. Útil cuando --screen-output=false.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Start(info RunInfo)                                                      {}
func (n *NoopPresenter) StartHost(host string)                                                   {}
func (n *NoopPresenter) FinishHost(host string, status Status, duration time.Duration, rows int) {}
func (n *NoopPresenter) ShowReport(view ReportView)                                              {}
func (n *NoopPresenter) Info(msg string)                                                         {}
func (n *NoopPresenter) Warning(msg string)                                                      {}
func (n *NoopPresenter) Error(msg string)                                                        {}
func (n *NoopPresenter) Finish(stats RunStats)                                                   {}
func (n *NoopPresenter) Close() error                                                            { return nil }
