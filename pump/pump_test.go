package pump_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"aqusens.io/nora/asrslink/analyzer"
	"aqusens.io/nora/asrslink/link"
	"aqusens.io/nora/asrslink/pump"
)

func isCommand(name string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		cmd, ok := x.(analyzer.Command)
		return ok && cmd.Name == name
	})
}

func TestController(t *testing.T) {
	t.Run("Stop signals done after an ack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ex := analyzer.NewMockExchanger(ctrl)
		serial := link.NewMockLineWriter(ctrl)

		gomock.InOrder(
			ex.EXPECT().Exchange(gomock.Any(), isCommand("StopPump")).Return(analyzer.Result{Status: analyzer.Ack}),
			serial.EXPECT().WriteLine(gomock.Any(), "D").Return(nil),
		)

		res := pump.New(ex, serial, nil).Stop(context.Background(), false)
		if !res.OK() {
			t.Errorf("expected Ack, got %v", res.Status)
		}
	})

	t.Run("Start signals done even when the analyzer times out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ex := analyzer.NewMockExchanger(ctrl)
		serial := link.NewMockLineWriter(ctrl)

		ex.EXPECT().Exchange(gomock.Any(), isCommand("StartPump")).Return(analyzer.Result{Status: analyzer.Timeout})
		serial.EXPECT().WriteLine(gomock.Any(), "D").Return(nil)

		res := pump.New(ex, serial, nil).Start(context.Background(), false)
		if res.Status != analyzer.Timeout {
			t.Errorf("expected Timeout, got %v", res.Status)
		}
	})

	t.Run("Suppressed done writes nothing to the sampler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ex := analyzer.NewMockExchanger(ctrl)
		serial := link.NewMockLineWriter(ctrl)

		ex.EXPECT().Exchange(gomock.Any(), isCommand("StopPump")).Return(analyzer.Result{Status: analyzer.Ack})
		ex.EXPECT().Exchange(gomock.Any(), isCommand("StartPump")).Return(analyzer.Result{Status: analyzer.Ack})
		serial.EXPECT().WriteLine(gomock.Any(), gomock.Any()).Times(0)

		c := pump.New(ex, serial, nil)
		c.Stop(context.Background(), true)
		c.Start(context.Background(), true)
	})

	t.Run("Serial write failure does not change the result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ex := analyzer.NewMockExchanger(ctrl)
		serial := link.NewMockLineWriter(ctrl)

		ex.EXPECT().Exchange(gomock.Any(), gomock.Any()).Return(analyzer.Result{Status: analyzer.Ack})
		serial.EXPECT().WriteLine(gomock.Any(), "D").Return(errors.New("port gone"))

		res := pump.New(ex, serial, nil).Stop(context.Background(), false)
		if !res.OK() {
			t.Errorf("expected Ack, got %v", res.Status)
		}
	})
}
