package rtcgopher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createTestRtc(t *testing.T) (*Rtc, *SimClock) {
	clock := NewSimClock(NewCalendarTime(2024, 6, 1, 12, 0, 0))
	rtc, errRtc := NewRtc(0, clock, nil)
	assert.Equal(t, nil, errRtc)
	return rtc, clock
}

func TestNewRtcID(t *testing.T) {
	clock := NewSimClock(EpochDefault())
	_, errBad := NewRtc(1, clock, nil)
	assert.ErrorIs(t, errBad, ErrNoSuchRtc)

	_, errNoClock := NewRtc(0, nil, nil)
	assert.NotEqual(t, nil, errNoClock)

	dut, errOk := NewRtc(0, clock, nil)
	assert.Equal(t, nil, errOk)
	assert.NotNil(t, dut)
}

func TestInitDeinitNow(t *testing.T) {
	rtc, _ := createTestRtc(t)

	//Caller gives contradicting day of week, init must derive correct one
	errInit := rtc.Init(CalendarTime{Year: 2024, Month: 6, Day: 1, Hour: 8, Minute: 30, Second: 15, Dotw: Monday})
	assert.Equal(t, nil, errInit)
	now, errNow := rtc.Now()
	assert.Equal(t, nil, errNow)
	assert.Equal(t, NewCalendarTime(2024, 6, 1, 8, 30, 15), now)
	assert.Equal(t, Saturday, now.Dotw)

	errDeinit := rtc.Deinit()
	assert.Equal(t, nil, errDeinit)
	now, errNow = rtc.Now()
	assert.Equal(t, nil, errNow)
	assert.Equal(t, EpochDefault(), now)
	assert.Equal(t, Thursday, now.Dotw)
}

func TestAlarmRelative(t *testing.T) {
	rtc, clock := createTestRtc(t)

	armed, errArm := rtc.AlarmAfter(ALARM0, 5500*time.Millisecond, false)
	assert.Equal(t, nil, errArm)
	assert.Equal(t, 5*time.Second, armed) //Milliseconds truncate to whole seconds

	//Query before due, clock unchanged
	left, errLeft := rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, 5*time.Second, left)

	clock.Advance(3 * time.Second)
	left, errLeft = rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, 2*time.Second, left)
}

func TestAlarmOneShot(t *testing.T) {
	rtc, clock := createTestRtc(t)

	_, errArm := rtc.AlarmAfter(ALARM0, 1000*time.Millisecond, false)
	assert.Equal(t, nil, errArm)

	clock.Advance(2 * time.Second)
	left, errLeft := rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, time.Duration(0), left)

	//One shot is consumed, next query fails
	_, errAgain := rtc.AlarmLeft(ALARM0)
	assert.ErrorIs(t, errAgain, ErrAlarmNotActive)
}

func TestAlarmPeriodic(t *testing.T) {
	rtc, clock := createTestRtc(t)

	_, errArm := rtc.AlarmAfter(ALARM0, 1000*time.Millisecond, true)
	assert.Equal(t, nil, errArm)

	clock.Advance(3 * time.Second) //Past due
	left, errLeft := rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, 1*time.Second, left) //Reloaded, full period reported

	//Still armed, reload happens again and again
	clock.Advance(1 * time.Second)
	left, errLeft = rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, 1*time.Second, left)
}

func TestAlarmZeroDuration(t *testing.T) {
	rtc, _ := createTestRtc(t)

	//Zero duration is legal and immediately due
	armed, errArm := rtc.AlarmAfter(ALARM0, 0, false)
	assert.Equal(t, nil, errArm)
	assert.Equal(t, time.Duration(0), armed)

	left, errLeft := rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, time.Duration(0), left)

	_, errAgain := rtc.AlarmLeft(ALARM0)
	assert.ErrorIs(t, errAgain, ErrAlarmNotActive)
}

func TestAlarmAbsolute(t *testing.T) {
	rtc, clock := createTestRtc(t)

	armed, errArm := rtc.AlarmAt(ALARM0, NewCalendarTime(2024, 6, 1, 12, 1, 30))
	assert.Equal(t, nil, errArm)
	assert.Equal(t, 90*time.Second, armed)

	clock.Advance(30 * time.Second)
	left, errLeft := rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, 60*time.Second, left)
}

func TestAlarmAbsolutePassed(t *testing.T) {
	rtc, _ := createTestRtc(t)

	//Exactly current time is rejected on absolute form
	_, errNow := rtc.AlarmAt(ALARM0, NewCalendarTime(2024, 6, 1, 12, 0, 0))
	assert.ErrorIs(t, errNow, ErrTimePassed)

	_, errPast := rtc.AlarmAt(ALARM0, NewCalendarTime(2024, 5, 31, 12, 0, 0))
	assert.ErrorIs(t, errPast, ErrTimePassed)

	//Failed arm leaves state unchanged, relative arm still works
	_, errArm := rtc.AlarmAfter(ALARM0, 1000*time.Millisecond, false)
	assert.Equal(t, nil, errArm)
}

func TestAlarmAbsoluteNeverPeriodic(t *testing.T) {
	rtc, clock := createTestRtc(t)

	_, errArm := rtc.AlarmAt(ALARM0, NewCalendarTime(2024, 6, 1, 12, 0, 10))
	assert.Equal(t, nil, errArm)

	clock.Advance(20 * time.Second)
	left, errLeft := rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, time.Duration(0), left)

	_, errAgain := rtc.AlarmLeft(ALARM0)
	assert.ErrorIs(t, errAgain, ErrAlarmNotActive)
}

func TestAlarmDoubleArm(t *testing.T) {
	rtc, _ := createTestRtc(t)

	_, errArm := rtc.AlarmAfter(ALARM0, 10000*time.Millisecond, false)
	assert.Equal(t, nil, errArm)

	_, errDouble := rtc.AlarmAfter(ALARM0, 5000*time.Millisecond, false)
	assert.ErrorIs(t, errDouble, ErrAlarmActive)
	_, errDoubleAbs := rtc.AlarmAt(ALARM0, NewCalendarTime(2024, 6, 2, 0, 0, 0))
	assert.ErrorIs(t, errDoubleAbs, ErrAlarmActive)

	//Original alarm is untouched
	left, errLeft := rtc.AlarmLeft(ALARM0)
	assert.Equal(t, nil, errLeft)
	assert.Equal(t, 10*time.Second, left)
}

func TestAlarmCancel(t *testing.T) {
	rtc, _ := createTestRtc(t)

	//Cancel without arming is not error
	assert.Equal(t, nil, rtc.Cancel(ALARM0))

	_, errArm := rtc.AlarmAfter(ALARM0, 5000*time.Millisecond, true)
	assert.Equal(t, nil, errArm)
	assert.Equal(t, nil, rtc.Cancel(ALARM0))

	_, errLeft := rtc.AlarmLeft(ALARM0)
	assert.ErrorIs(t, errLeft, ErrAlarmNotActive)

	//Idempotent
	assert.Equal(t, nil, rtc.Cancel(ALARM0))

	//Cancelled slot can be armed again
	_, errRearm := rtc.AlarmAfter(ALARM0, 1000*time.Millisecond, false)
	assert.Equal(t, nil, errRearm)
}

func TestAlarmIDValidation(t *testing.T) {
	rtc, _ := createTestRtc(t)

	_, errArm := rtc.AlarmAfter(1, 1000*time.Millisecond, false)
	assert.ErrorIs(t, errArm, ErrInvalidAlarmID)
	_, errAt := rtc.AlarmAt(2, NewCalendarTime(2024, 6, 2, 0, 0, 0))
	assert.ErrorIs(t, errAt, ErrInvalidAlarmID)
	_, errLeft := rtc.AlarmLeft(-1)
	assert.ErrorIs(t, errLeft, ErrInvalidAlarmID)
	errCancel := rtc.Cancel(3)
	assert.ErrorIs(t, errCancel, ErrInvalidAlarmID)
}
