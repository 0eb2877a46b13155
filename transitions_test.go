package countdown_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghettovoice/countdown"
)

var _ = Describe("Timer", Label("timer"), func() {
	var (
		clock       *countdown.ManualFrameClock
		tmr         *countdown.Timer
		completions *atomic.Int32
	)

	BeforeEach(func() {
		clock = countdown.NewManualFrameClock(time.Unix(0, 0))
		completions = new(atomic.Int32)

		var err error
		tmr, err = countdown.New(time.Second, &countdown.Options{
			Clock:      clock,
			OnComplete: func(context.Context) { completions.Add(1) },
		})
		Expect(err).ToNot(HaveOccurred(), "assert timer is created without error")
		DeferCleanup(tmr.Close)
	})

	advance := func(d time.Duration) {
		Eventually(clock.Pending).Should(BeNumerically(">", 0), "assert a frame registration is pending")
		clock.Advance(d)
	}

	enterState := func(s countdown.State) {
		switch s {
		case countdown.StateStandby:
		case countdown.StateActive:
			tmr.Start()
		case countdown.StatePaused:
			tmr.Start()
			tmr.Pause()
		case countdown.StateDone:
			tmr.Start()
			advance(time.Second)
		}
		Eventually(tmr.State).Should(Equal(s), "assert the timer reached the initial state")
	}

	DescribeTable("lifecycle transitions", Label("transitions"),
		func(from countdown.State, op string, want countdown.State) {
			enterState(from)

			switch op {
			case "start":
				tmr.Start()
			case "pause":
				tmr.Pause()
			case "resume":
				tmr.Resume()
			}

			if want == from {
				Consistently(tmr.State).Should(Equal(want), "assert the operation is a silent no-op")
			} else {
				Eventually(tmr.State).Should(Equal(want), "assert the timer reached the expected state")
			}
		},
		EntryDescription("%v + %v -> %v"),
		Entry(nil, countdown.StateStandby, "start", countdown.StateActive),
		Entry(nil, countdown.StateStandby, "pause", countdown.StateStandby),
		Entry(nil, countdown.StateStandby, "resume", countdown.StateStandby),
		Entry(nil, countdown.StateActive, "start", countdown.StateActive),
		Entry(nil, countdown.StateActive, "pause", countdown.StatePaused),
		Entry(nil, countdown.StateActive, "resume", countdown.StateActive),
		Entry(nil, countdown.StatePaused, "start", countdown.StateActive),
		Entry(nil, countdown.StatePaused, "pause", countdown.StatePaused),
		Entry(nil, countdown.StatePaused, "resume", countdown.StateActive),
		Entry(nil, countdown.StateDone, "start", countdown.StateActive),
		Entry(nil, countdown.StateDone, "pause", countdown.StateDone),
		Entry(nil, countdown.StateDone, "resume", countdown.StateDone),
	)

	Describe("countdown run", Label("e2e"), func() {
		It("runs through pause and resume to completion", func() {
			tmr.Start()
			Expect(tmr.State()).To(Equal(countdown.StateActive), "assert the timer is counting down")
			Expect(tmr.Progress()).To(BeZero(), "assert the countdown starts from zero")

			advance(250 * time.Millisecond)
			Eventually(tmr.Progress).Should(Equal(0.25), "assert a quarter of the countdown elapsed")

			advance(250 * time.Millisecond)
			Eventually(tmr.Progress).Should(Equal(0.5), "assert half of the countdown elapsed")
			Expect(tmr.State()).To(Equal(countdown.StateActive), "assert the timer is still counting down")

			tmr.Pause()
			Eventually(tmr.State).Should(Equal(countdown.StatePaused), "assert the timer is paused")
			Eventually(clock.Pending).Should(BeZero(), "assert the frame registration is released")

			// Time passing while paused must not move the countdown
			clock.Advance(300 * time.Millisecond)
			Consistently(tmr.Progress).Should(Equal(0.5), "assert the progress is frozen while paused")

			tmr.Resume()
			Eventually(tmr.State).Should(Equal(countdown.StateActive), "assert the timer resumed")

			advance(250 * time.Millisecond)
			Eventually(tmr.Progress).Should(Equal(0.75), "assert the countdown continued from the preserved progress")

			advance(500 * time.Millisecond)
			Eventually(tmr.State).Should(Equal(countdown.StateDone), "assert the countdown finished")
			Expect(tmr.Progress()).To(Equal(1.0), "assert the progress is clamped to 1")
			Expect(completions.Load()).To(Equal(int32(1)), "assert the completion callback fired exactly once")
		})

		It("starts over from a countdown paused mid-way", func() {
			tmr.Start()

			advance(750 * time.Millisecond)
			Eventually(tmr.Progress).Should(Equal(0.75), "assert most of the countdown elapsed")

			tmr.Pause()
			Eventually(tmr.State).Should(Equal(countdown.StatePaused), "assert the timer is paused")
			Eventually(clock.Pending).Should(BeZero(), "assert the frame registration is released")

			tmr.Restart()
			Eventually(tmr.State).Should(Equal(countdown.StateActive), "assert the timer is counting down")
			Expect(tmr.Progress()).To(BeZero(), "assert the restart reset the progress")

			advance(time.Second)
			Eventually(tmr.State).Should(Equal(countdown.StateDone), "assert the countdown finished")
			Expect(completions.Load()).To(Equal(int32(1)), "assert only the completed cycle reported")
		})
	})
})
