package transport

import (
	"context"
	"testing"
	"time"

	"github.com/joeycumines/go-longpoll"
	"github.com/stretchr/testify/require"
)

func TestHostSource_SelectReturnsSingleEvent(t *testing.T) {
	s := NewHostSource(&longpoll.ChannelConfig{MinSize: 1})
	defer s.Close()

	s.Inject(HostEvent{Iface: TouchIface, Values: []any{TouchEnd, 10, 20}})

	msg, err := s.Select(context.Background(), time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.EqualValues(t, TouchIface, msg.Iface)
	require.Equal(t, []any{TouchEnd, 10, 20}, msg.Values)
}

func TestHostSource_SelectTimesOutWithNoEvent(t *testing.T) {
	s := NewHostSource(&longpoll.ChannelConfig{MinSize: 1})
	defer s.Close()

	msg, err := s.Select(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)
	require.Nil(t, msg)
}

func TestHostSource_CoalescesBurstAndPreservesOrder(t *testing.T) {
	s := NewHostSource(&longpoll.ChannelConfig{MinSize: 3, MaxSize: 10})
	defer s.Close()

	go func() {
		s.Inject(HostEvent{Iface: TouchIface, Values: []any{TouchStart, 1, 1}})
		s.Inject(HostEvent{Iface: TouchIface, Values: []any{TouchMove, 2, 2}})
		s.Inject(HostEvent{Iface: TouchIface, Values: []any{TouchEnd, 3, 3}})
	}()

	var got []*Message
	for i := 0; i < 3; i++ {
		msg, err := s.Select(context.Background(), time.Second)
		require.NoError(t, err)
		require.NotNil(t, msg)
		got = append(got, msg)
	}

	require.Equal(t, TouchStart, got[0].Values[0])
	require.Equal(t, TouchMove, got[1].Values[0])
	require.Equal(t, TouchEnd, got[2].Values[0])
}

func TestHostSource_SelectRespectsContextCancellation(t *testing.T) {
	s := NewHostSource(&longpoll.ChannelConfig{MinSize: 1})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg, err := s.Select(ctx, time.Second)
	require.Error(t, err)
	require.Nil(t, msg)
}
