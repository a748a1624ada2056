/*
Clock source backed by linux /dev/rtc character device.

Kernel exposes battery backed clock chips (ds1307, pcf8523, SoC internal...)
thru same rtc ioctl interface so one implementation covers them all.
Requires permissions to rtc device, typically root or rtc group
*/
package linuxrtc

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/hjkoskel/rtcgopher"
)

const DEFAULTDEVICE = "/dev/rtc0"

//Device is ClockSource on real rtc hardware
type Device struct {
	f *os.File
}

//Open opens rtc character device like /dev/rtc0. Close when done
func Open(devname string) (*Device, error) {
	f, errOpen := os.OpenFile(devname, os.O_RDWR, 0)
	if errOpen != nil {
		return nil, fmt.Errorf("opening %s failed %v", devname, errOpen)
	}
	return &Device{f: f}, nil
}

func (p *Device) Close() error {
	return p.f.Close()
}

//ReadTime reads current calendar time from hardware. Day of week is derived, not trusted from chip
func (p *Device) ReadTime() (rtcgopher.CalendarTime, error) {
	rt, errGet := unix.IoctlGetRTCTime(int(p.f.Fd()))
	if errGet != nil {
		return rtcgopher.CalendarTime{}, fmt.Errorf("RTC_RD_TIME failed %v", errGet)
	}
	//Kernel rtc_time: year counted from 1900, month 0-11
	return rtcgopher.NewCalendarTime(
		int(rt.Year)+1900,
		int(rt.Mon)+1,
		int(rt.Mday),
		int(rt.Hour),
		int(rt.Min),
		int(rt.Sec)), nil
}

//SetTime writes calendar time to hardware
func (p *Device) SetTime(t rtcgopher.CalendarTime) error {
	rt := unix.RTCTime{
		Sec:  int32(t.Second),
		Min:  int32(t.Minute),
		Hour: int32(t.Hour),
		Mday: int32(t.Day),
		Mon:  int32(t.Month - 1),
		Year: int32(t.Year - 1900),
		Wday: int32(t.Dotw),
	}
	errSet := unix.IoctlSetRTCTime(int(p.f.Fd()), &rt)
	if errSet != nil {
		return fmt.Errorf("RTC_SET_TIME failed %v", errSet)
	}
	return nil
}
