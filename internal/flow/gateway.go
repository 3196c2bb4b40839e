package flow

import (
	"fmt"
	"time"

	"nexuscore-backend/internal/domain"
)

const (
	LinkInit          State = "INIT"
	LinkSecurityCheck State = "SECURITY_CHECK"
	LinkHandshake     State = "HANDSHAKE"
	LinkSuccess       State = "SUCCESS"
	LinkCompleted     State = "COMPLETED"
	LinkCancelled     State = "CANCELLED"
)

const (
	EventInitiate  Event = "initiate"
	EventVerify    Event = "verify"
	EventEstablish Event = "establish"
)

var linkTransitions = []Transition{
	{From: LinkInit, Event: EventInitiate, To: LinkSecurityCheck},
	{From: LinkInit, Event: EventCancel, To: LinkCancelled},
	{From: LinkSecurityCheck, Event: EventVerify, To: LinkHandshake},
	{From: LinkHandshake, Event: EventEstablish, To: LinkSuccess},
	{From: LinkSuccess, Event: EventComplete, To: LinkCompleted},
}

type LinkTimings struct {
	SecurityCheck time.Duration
	Handshake     time.Duration
	Confirm       time.Duration
}

type LinkStatus struct {
	ID      string             `json:"id"`
	State   State              `json:"state"`
	Gateway domain.GatewayInfo `json:"gateway"`
}

// Link walks INIT -> SECURITY_CHECK -> HANDSHAKE -> SUCCESS for one gateway
// kind, then calls onSuccess so the caller can attach the new wallet.
type Link struct {
	id      string
	gateway domain.GatewayInfo
	machine *Machine
}

func NewLink(id string, kind domain.GatewayKind, timings LinkTimings, clock Clock, onSuccess func(domain.GatewayKind)) (*Link, error) {
	info, ok := domain.LookupGateway(kind)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGateway, kind)
	}
	l := &Link{
		id:      id,
		gateway: info,
		machine: NewMachine("gateway", id, LinkInit, clock, linkTransitions),
	}
	l.machine.OnEnter(LinkSecurityCheck, func() {
		l.machine.After(timings.SecurityCheck, EventVerify)
	})
	l.machine.OnEnter(LinkHandshake, func() {
		l.machine.After(timings.Handshake, EventEstablish)
	})
	l.machine.OnEnter(LinkSuccess, func() {
		l.machine.After(timings.Confirm, EventComplete)
	})
	l.machine.OnEnter(LinkCompleted, func() {
		if onSuccess != nil {
			onSuccess(kind)
		}
	})
	return l, nil
}

func (l *Link) ID() string {
	return l.id
}

func (l *Link) Kind() domain.GatewayKind {
	return l.gateway.Kind
}

// Initiate starts the secure link sequence.
func (l *Link) Initiate() error {
	return l.machine.Fire(EventInitiate)
}

func (l *Link) Cancel() error {
	if err := l.machine.Fire(EventCancel); err != nil {
		return fmt.Errorf("%w: link is %s", ErrNotCancellable, l.machine.State())
	}
	return nil
}

func (l *Link) Closed() bool {
	s := l.machine.State()
	return s == LinkCompleted || s == LinkCancelled
}

func (l *Link) Stop() {
	l.machine.Stop()
}

func (l *Link) Status() LinkStatus {
	return LinkStatus{ID: l.id, State: l.machine.State(), Gateway: l.gateway}
}
