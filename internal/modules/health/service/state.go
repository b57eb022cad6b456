package service

import (
	"math"
	"sync/atomic"
	"time"
)

// State — атомарное состояние сервиса для health-эндпоинтов.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected   atomic.Bool
	lastTickUnix  atomic.Int64  // unix seconds, последний тик цены из WS
	lastOrderUnix atomic.Int64  // unix seconds, последний отправленный ордер
	lastPriceBits atomic.Uint64 // float64 bits, последняя цена из WS
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

func (s *State) TouchTick(t time.Time) { s.lastTickUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time   { return unixOrZero(s.lastTickUnix.Load()) }

func (s *State) TouchOrder(t time.Time) { s.lastOrderUnix.Store(t.Unix()) }
func (s *State) LastOrder() time.Time   { return unixOrZero(s.lastOrderUnix.Load()) }

func (s *State) SetLastPrice(px float64) { s.lastPriceBits.Store(math.Float64bits(px)) }
func (s *State) LastPrice() float64      { return math.Float64frombits(s.lastPriceBits.Load()) }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

func unixOrZero(u int64) time.Time {
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}
