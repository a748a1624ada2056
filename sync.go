/*
Programming clock hardware from trusted time sources
*/
package rtcgopher

import (
	"fmt"
	"time"

	"github.com/hjkoskel/rtcgopher/timesync"
)

//SyncClock programs clock source from external time source like NTP
func (p *Rtc) SyncClock(ts timesync.TimeSync) error {
	t, errGet := ts.GetTime()
	if errGet != nil {
		return fmt.Errorf("getting sync time failed %v", errGet)
	}
	return p.setClock(FromTime(t.UTC()), SETSOURCE_SYNC)
}

//SyncFromSystem copies kernel wall clock to clock source.
//Refuses if kernel does not report clock as synchronized, garbage time on
//battery backed clock is worse than old time
func (p *Rtc) SyncFromSystem() error {
	inSync, errSync := SystemClockSynced_adjtimex()
	if errSync != nil {
		return fmt.Errorf("checking system clock sync error= %v", errSync)
	}
	if !inSync {
		return fmt.Errorf("system clock is not synchronized")
	}
	return p.setClock(FromTime(time.Now().UTC()), SETSOURCE_SYSTEM)
}
