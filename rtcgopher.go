/*
Rtcgopher

Realtime clock core with single alarm slot. Clock hardware is behind ClockSource
interface so core is testable without hardware (use SimClock on tests).

Alarm works without timer interrupts. Due time is checked and periodic alarm
reloaded only when AlarmLeft is called. So caller polls, core never calls back.
*/
package rtcgopher

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

//ClockSource is hardware clock or simulated one. Battery backed hardware keeps time over power loss, core does not
type ClockSource interface {
	ReadTime() (CalendarTime, error)
	SetTime(CalendarTime) error
}

var (
	ErrNoSuchRtc      = errors.New("rtc doesn't exist")    //Only id 0 exists
	ErrInvalidAlarmID = errors.New("alarm_id must be 0")   //Hardware have only one alarm slot
	ErrAlarmActive    = errors.New("alarm already active") //Cancel before arming again
	ErrAlarmNotActive = errors.New("alarm not active")     //AlarmLeft requires armed alarm
	ErrTimePassed     = errors.New("time already passed")  //Absolute alarm time must be in future
)

//ALARM0 is the only valid alarm identifier
const ALARM0 = 0

//Rtc owns the single alarm slot and injected clock source
type Rtc struct {
	clock  ClockSource
	setLog *SetLog //Optional, records clock set events

	mu     sync.Mutex //Guards alarm fields, AlarmLeft mutates on expiry
	active bool
	period SecEpoch //In seconds. 0 = one shot
	alarm  SecEpoch //Due time in seconds since reference date
}

//NewRtc creates Rtc. Only id 0 exists on this hardware. setLog is optional, nil disables set event logging
func NewRtc(id int, clock ClockSource, setLog *SetLog) (*Rtc, error) {
	if id != 0 {
		return nil, fmt.Errorf("RTC(%v): %w", id, ErrNoSuchRtc)
	}
	if clock == nil {
		return nil, fmt.Errorf("clock source required")
	}
	return &Rtc{clock: clock, setLog: setLog}, nil
}

//setClock writes t to clock source and records event to set log if log is attached
func (p *Rtc) setClock(t CalendarTime, source SetSource) error {
	prev, errPrev := p.clock.ReadTime()
	if errPrev != nil {
		prev = CalendarTime{} //Previous time is diagnostic only, zero value marks unknown
	}
	errSet := p.clock.SetTime(t)
	if errSet != nil {
		return fmt.Errorf("setting clock to %v failed %v", t, errSet)
	}
	if p.setLog != nil {
		errLog := p.setLog.Append(SetEvent{Previous: prev, Set: t, Source: source})
		if errLog != nil {
			return fmt.Errorf("clock set to %v but logging failed %v", t, errLog)
		}
	}
	return nil
}

//Init sets current calendar time. Day of week is derived from date, caller value is ignored
func (p *Rtc) Init(t CalendarTime) error {
	t.Dotw = DayOfWeek(t.Year, t.Month, t.Day)
	return p.setClock(t, SETSOURCE_INIT)
}

//Deinit resets clock back to reference date 2015-01-01 00:00:00 Thursday
func (p *Rtc) Deinit() error {
	return p.setClock(EpochDefault(), SETSOURCE_DEINIT)
}

//Now reads current calendar time from clock source
func (p *Rtc) Now() (CalendarTime, error) {
	return p.clock.ReadTime()
}

//readSeconds gets current time as linear seconds
func (p *Rtc) readSeconds() (SecEpoch, error) {
	t, errRead := p.clock.ReadTime()
	if errRead != nil {
		return 0, fmt.Errorf("reading clock failed %v", errRead)
	}
	return t.SecondsSinceEpoch(), nil
}

//AlarmAfter arms alarm after duration from now. Sub second part of after is dropped.
//Zero duration is legal, alarm is then immediately due. With repeat alarm reloads
//itself by same duration every time AlarmLeft finds it expired.
//Returns duration until due, rounded to whole seconds. State is unchanged on error
func (p *Rtc) AlarmAfter(alarmID int, after time.Duration, repeat bool) (time.Duration, error) {
	if alarmID != ALARM0 {
		return 0, fmt.Errorf("alarm_id=%v: %w", alarmID, ErrInvalidAlarmID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return 0, fmt.Errorf("RTC(alarm_id=0) %w", ErrAlarmActive)
	}
	now, errNow := p.readSeconds()
	if errNow != nil {
		return 0, errNow
	}
	duration := SecEpoch(after.Milliseconds() / 1000)
	if repeat {
		p.period = duration
	} else {
		p.period = 0
	}
	p.alarm = now + duration
	p.active = true
	return time.Duration(duration) * time.Second, nil
}

//AlarmAt arms one shot alarm at absolute calendar time. Absolute alarms are never
//periodic, repeating makes sense only with durations.
//Time at or before current time fails with ErrTimePassed. State is unchanged on error
func (p *Rtc) AlarmAt(alarmID int, at CalendarTime) (time.Duration, error) {
	if alarmID != ALARM0 {
		return 0, fmt.Errorf("alarm_id=%v: %w", alarmID, ErrInvalidAlarmID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return 0, fmt.Errorf("RTC(alarm_id=0) %w", ErrAlarmActive)
	}
	now, errNow := p.readSeconds()
	if errNow != nil {
		return 0, errNow
	}
	due := at.SecondsSinceEpoch()
	if due <= now {
		return 0, fmt.Errorf("alarm at %v: %w", at, ErrTimePassed)
	}
	p.period = 0
	p.alarm = due
	p.active = true
	return time.Duration(due-now) * time.Second, nil
}

//AlarmLeft tells how long until alarm is due. Expired periodic alarm is reloaded
//here and full period is reported. Expired one shot alarm reports zero and goes
//inactive, next call fails with ErrAlarmNotActive
func (p *Rtc) AlarmLeft(alarmID int) (time.Duration, error) {
	if alarmID != ALARM0 {
		return 0, fmt.Errorf("alarm_id=%v: %w", alarmID, ErrInvalidAlarmID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return 0, fmt.Errorf("RTC(alarm_id=0) %w", ErrAlarmNotActive)
	}
	now, errNow := p.readSeconds()
	if errNow != nil {
		return 0, errNow
	}
	left := SecEpoch(0)
	if now < p.alarm {
		left = p.alarm - now
	}
	if left == 0 { //Reload if periodic and alarm expired
		if p.period != 0 {
			left = p.period
			p.alarm = now + p.period
		} else {
			p.active = false //One shot consumed
		}
	}
	return time.Duration(left) * time.Second, nil
}

//Cancel disarms alarm. Idempotent, cancelling inactive alarm is not error
func (p *Rtc) Cancel(alarmID int) error {
	if alarmID != ALARM0 {
		return fmt.Errorf("alarm_id=%v: %w", alarmID, ErrInvalidAlarmID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
	return nil
}
