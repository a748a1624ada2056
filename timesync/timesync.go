/*
Timesync library for getting trusted time from external sources like NTP.
Used for programming realtime clock hardware
*/
package timesync

import "time"

type TimeSync interface {
	//Get corrected current time
	GetTime() (time.Time, error)
}
