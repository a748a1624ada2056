/*
Example use of rtcgopher

Runs on simulated clock so no hardware needed. Swap NewSimClock to
linuxrtc.Open("/dev/rtc0") for real hardware
*/
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hjkoskel/rtcgopher"
)

func main() {
	fmt.Printf("--RTC alarm example--\n")

	clock := rtcgopher.NewSimClock(rtcgopher.NewCalendarTime(2024, 6, 1, 12, 0, 0))
	rtc, errRtc := rtcgopher.NewRtc(0, clock, nil)
	if errRtc != nil {
		fmt.Printf("creating rtc failed %v\n", errRtc)
		os.Exit(-1)
	}

	now, _ := rtc.Now()
	fmt.Printf("clock is %v\n", now)

	armed, errArm := rtc.AlarmAfter(rtcgopher.ALARM0, 5000*time.Millisecond, true)
	if errArm != nil {
		fmt.Printf("arming failed %v\n", errArm)
		os.Exit(-1)
	}
	fmt.Printf("armed periodic alarm, due in %v\n", armed)

	for i := 0; i < 12; i++ {
		clock.Advance(time.Second)
		left, errLeft := rtc.AlarmLeft(rtcgopher.ALARM0)
		if errLeft != nil {
			fmt.Printf("alarm query failed %v\n", errLeft)
			os.Exit(-1)
		}
		now, _ = rtc.Now()
		fmt.Printf("%v  left=%v\n", now, left)
	}

	errCancel := rtc.Cancel(rtcgopher.ALARM0)
	if errCancel != nil {
		fmt.Printf("cancel failed %v\n", errCancel)
		os.Exit(-1)
	}
	fmt.Printf("alarm cancelled\n")
}
