/*
Set event log.

Append only record of clock set events: what time was on clock before, what was
written and who did it (init, deinit, external sync...). Helps debugging devices
that come back from field with mystery time. Persisted thru fixregsto so flash
wear stays bounded.

This is diagnostic trail only. Alarm state is not persisted, alarm does not
survive power loss.
*/
package rtcgopher

import (
	"fmt"

	"github.com/hjkoskel/fixregsto"
)

//SetSource tells who programmed the clock
type SetSource byte

const (
	SETSOURCE_INIT   SetSource = iota //Caller gave explicit calendar time
	SETSOURCE_DEINIT                  //Reset back to reference date
	SETSOURCE_SYNC                    //External time source like NTP
	SETSOURCE_SYSTEM                  //Copied from kernel wall clock
)

const RECORDSIZE_SETEVENT = 2*RECORDSIZE_CALENDARTIME + 1

//SetEvent is one clock set. Previous is zero value CalendarTime if old time was not readable
type SetEvent struct {
	Previous CalendarTime
	Set      CalendarTime
	Source   SetSource
}

//ToBinary creates fixed 17 byte binary presentation
func (p *SetEvent) ToBinary() ([]byte, error) {
	prevRaw, errPrev := p.Previous.ToBinary()
	if errPrev != nil {
		return nil, fmt.Errorf("SetEvent previous: %v", errPrev)
	}
	setRaw, errSet := p.Set.ToBinary()
	if errSet != nil {
		return nil, fmt.Errorf("SetEvent set: %v", errSet)
	}
	result := make([]byte, 0, RECORDSIZE_SETEVENT)
	result = append(result, prevRaw...)
	result = append(result, setRaw...)
	result = append(result, byte(p.Source))
	return result, nil
}

//ParseSetEvent parses from binary format
func ParseSetEvent(raw []byte) (SetEvent, error) {
	if len(raw) != RECORDSIZE_SETEVENT {
		return SetEvent{}, fmt.Errorf("invalid size %v for setevent", len(raw))
	}
	prev, errPrev := ParseCalendarTime(raw[0:RECORDSIZE_CALENDARTIME])
	if errPrev != nil {
		return SetEvent{}, errPrev
	}
	set, errSet := ParseCalendarTime(raw[RECORDSIZE_CALENDARTIME : 2*RECORDSIZE_CALENDARTIME])
	if errSet != nil {
		return SetEvent{}, errSet
	}
	return SetEvent{Previous: prev, Set: set, Source: SetSource(raw[2*RECORDSIZE_CALENDARTIME])}, nil
}

//ParseSetEventList parses concatenated records, checks length validity
func ParseSetEventList(raw []byte) ([]SetEvent, error) {
	if len(raw)%RECORDSIZE_SETEVENT != 0 {
		return []SetEvent{}, fmt.Errorf("must be multiple of %v (len=%v)", RECORDSIZE_SETEVENT, len(raw))
	}
	result := make([]SetEvent, len(raw)/RECORDSIZE_SETEVENT)
	for i := range result {
		var errParse error
		result[i], errParse = ParseSetEvent(raw[i*RECORDSIZE_SETEVENT : (i+1)*RECORDSIZE_SETEVENT])
		if errParse != nil {
			return result, errParse
		}
	}
	return result, nil
}

//SetLog is conversion layer for storing SetEvents in reliable way. Content is cached in mem for fast reads
type SetLog struct {
	sto fixregsto.FixRegSto
	mem []SetEvent
}

//CreateSetLog restores content from FixRegSto storage and initializes SetLog struct
func CreateSetLog(storage fixregsto.FixRegSto) (SetLog, error) {
	raw, readErr := storage.ReadAll()
	if readErr != nil {
		return SetLog{}, fmt.Errorf("error on ReadAll on CreateSetLog err=%v", readErr.Error())
	}
	mem, errParse := ParseSetEventList(raw)
	return SetLog{sto: storage, mem: mem}, errParse
}

//Append adds new set event to log
func (p *SetLog) Append(e SetEvent) error {
	binarr, errbin := e.ToBinary()
	if errbin != nil {
		return fmt.Errorf("Append error, binary coding %#v failed %v", e, errbin)
	}
	_, errWrite := p.sto.Write(binarr)
	if errWrite != nil {
		return errWrite
	}
	p.mem = append(p.mem, e)
	return nil
}

//GetLatestN gives n newest events, or all if there are fewer
func (p *SetLog) GetLatestN(n int) ([]SetEvent, error) {
	maxN := len(p.mem)
	if maxN < n {
		return p.mem, nil
	}
	return p.mem[maxN-n:], nil
}

func (p *SetLog) All() ([]SetEvent, error) {
	return p.mem, nil
}

func (p *SetLog) Len() (int, error) {
	return len(p.mem), nil
}
