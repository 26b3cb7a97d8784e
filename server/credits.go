package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chaos-io/matting/rembg"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type AccountFetcher interface {
	Account(ctx context.Context, apiKey string) (*rembg.AccountInfo, error)
}

// CreditMonitor 按 cron 表达式定时查询 remove.bg 剩余额度并记录日志
type CreditMonitor struct {
	fetcher AccountFetcher
	apiKey  string
	timeout time.Duration
	cron    *cron.Cron

	mu   sync.Mutex
	last *rembg.AccountInfo
}

func NewCreditMonitor(fetcher AccountFetcher, apiKey, schedule string) (*CreditMonitor, error) {
	m := &CreditMonitor{
		fetcher: fetcher,
		apiKey:  apiKey,
		timeout: 30 * time.Second,
		cron:    cron.New(),
	}
	if _, err := m.cron.AddFunc(schedule, m.check); err != nil {
		return nil, fmt.Errorf("parse credit check schedule %q: %w", schedule, err)
	}
	return m, nil
}

func (m *CreditMonitor) Start() {
	m.cron.Start()
}

// Stop 等待正在执行的查询结束
func (m *CreditMonitor) Stop() {
	<-m.cron.Stop().Done()
}

func (m *CreditMonitor) Last() *rembg.AccountInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *CreditMonitor) check() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	info, err := m.fetcher.Account(ctx, m.apiKey)
	if err != nil {
		log.Error().Err(err).Msg("check remove.bg credits")
		return
	}

	m.mu.Lock()
	m.last = info
	m.mu.Unlock()

	log.Info().
		Float64("credits_total", info.CreditsTotal).
		Int("free_calls", info.FreeCalls).
		Msg("remove.bg credits")
}
