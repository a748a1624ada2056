/*
Helper for checking kernel wall clock status.

Before copying system time to battery backed clock it is good to know is system
time actually disciplined (NTP, PTP...). Checking depends on installation,
initial guess is that adjtimex should work.

Please add functions for checking synchronization status in some other methods
*/
package rtcgopher

import (
	"syscall"
)

// https://man7.org/linux/man-pages/man2/adjtimex.2.html
const (
	TIME_OK   = iota //Clock synchronized, no leap second adjustment pending.
	TIME_INS         //Leap second will be added at the end of the UTC day
	TIME_DEL         //Leap second will be deleted at the end of the UTC day
	TIME_OOP         //Insertion of a leap second is in progress
	TIME_WAIT        //Leap second insertion or deletion has been completed
	TIME_ERROR       //System clock is not synchronized to a reliable server
)

//SystemClockSynced_adjtimex uses syscall.Adjtimex for checking is kernel wall clock synchronized
func SystemClockSynced_adjtimex() (bool, error) {
	tx := syscall.Timex{}
	state, err := syscall.Adjtimex(&tx)
	if err != nil {
		return false, err
	}
	return (state <= 0) && (state != TIME_ERROR), nil
}
