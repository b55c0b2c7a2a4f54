package web

import (
	"testing"

	"cup-live-service/config"
	"cup-live-service/services"
)

// 信号可能先于监听协程到达，Stop 必须在 Start 之前调用也安全
func TestStopBeforeStart(t *testing.T) {
	stores := services.NewMemoryStores()
	hub := NewHub()

	matches := services.NewMatchService(stores, hub)
	standings := services.NewStandingsService(stores)
	gate := services.NewStaticTokenGate(testAdminToken, testRefereeToken)

	cfg := &config.Config{Port: "0", AllowedOrigins: []string{"*"}}
	server := NewServer(cfg, stores, matches, standings, hub, gate)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Stop before Start panicked: %v", r)
		}
	}()
	server.Stop()
}
