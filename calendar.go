/*
Calendar time arithmetic for battery backed realtime clocks.

Calendar fields are converted to linear seconds counted from fixed reference
date 2015-01-01 (Thursday). Same reference date as MicroPython machine.RTC uses,
so values are interchangeable with that ecosystem.

Day counting is julian day style but only leap year corrected. No century rules,
so math is valid on years 2000-2099. That covers realistic operating range of
battery backed clock hardware.
*/
package rtcgopher

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

//SecEpoch is seconds elapsed since reference date 2015-01-01T00:00:00
type SecEpoch int64

type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const (
	MJDBASE       = 736012 //2015-01-01 in day numbering of calendarToMJD
	DOTWBASE      = Thursday
	SECONDSPERDAY = 24 * 60 * 60
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

//String name of weekday, mainly for printouts
func (p Weekday) String() string {
	if p < Sunday || Saturday < p {
		return fmt.Sprintf("Weekday(%v)", int(p))
	}
	return weekdayNames[p]
}

//CalendarTime is what clock hardware stores. Always UTC naive, no timezones and no sub second precision
type CalendarTime struct {
	Year   int //16bit range in practice
	Month  int //1-12
	Day    int //1-31, not validated against month length
	Hour   int //0-23
	Minute int //0-59
	Second int //0-59
	Dotw   Weekday
}

//NewCalendarTime creates CalendarTime with day of week derived from date. Use this instead of struct literal so Dotw can not contradict date
func NewCalendarTime(year, month, day, hour, minute, second int) CalendarTime {
	return CalendarTime{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
		Dotw:   DayOfWeek(year, month, day),
	}
}

//EpochDefault is reference date itself. Clock hardware starts from this after deinit
func EpochDefault() CalendarTime {
	return NewCalendarTime(2015, 1, 1, 0, 0, 0)
}

//calendarToMJD computes day number, only leap year corrected. From https://pdc.ro.nu/jd-code.html by Robin O'Leary
func calendarToMJD(year, month, day int) int64 {
	if month < 3 { //Jan and Feb belong to previous year for leap day placement
		year--
		month += 12
	}
	return int64(year)*365 + int64(year/4) + int64((month*153+3)/5) + int64(day)
}

//DayOfWeek derives day of week from date, 0=Sunday...6=Saturday
func DayOfWeek(year, month, day int) Weekday {
	d := (calendarToMJD(year, month, day) - MJDBASE + int64(DOTWBASE)) % 7
	if d < 0 {
		d += 7
	}
	return Weekday(d)
}

//SecondsSinceEpoch converts calendar fields to linear seconds. Strictly increasing when calendar time advances
func (p CalendarTime) SecondsSinceEpoch() SecEpoch {
	days := calendarToMJD(p.Year, p.Month, p.Day) - MJDBASE
	return SecEpoch(days)*SECONDSPERDAY + SecEpoch(p.Hour*3600+p.Minute*60+p.Second)
}

//FromTime converts golang time.Time to CalendarTime. Sub second part is dropped
func FromTime(t time.Time) CalendarTime {
	return NewCalendarTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

//Time converts to golang time.Time in UTC
func (p CalendarTime) Time() time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, p.Minute, p.Second, 0, time.UTC)
}

//String formats like 2015-01-01 00:00:00 Thursday
func (p CalendarTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d %v", p.Year, p.Month, p.Day, p.Hour, p.Minute, p.Second, p.Dotw)
}

const RECORDSIZE_CALENDARTIME = 8

//ToBinary creates fixed 8 byte binary presentation for record storage
func (p *CalendarTime) ToBinary() ([]byte, error) {
	if p.Year < 0 || 0xFFFF < p.Year {
		return nil, fmt.Errorf("ToBinary: year %v does not fit in 16bits", p.Year)
	}
	buf := new(bytes.Buffer)
	err := binary.Write(buf, binary.LittleEndian, uint16(p.Year))
	if err != nil {
		return nil, err
	}
	err = binary.Write(buf, binary.LittleEndian, []uint8{
		uint8(p.Month), uint8(p.Day), uint8(p.Hour), uint8(p.Minute), uint8(p.Second), uint8(p.Dotw)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//ParseCalendarTime parses from binary format
func ParseCalendarTime(raw []byte) (CalendarTime, error) {
	if len(raw) != RECORDSIZE_CALENDARTIME {
		return CalendarTime{}, fmt.Errorf("invalid size %v for calendartime", len(raw))
	}
	return CalendarTime{
		Year:   int(binary.LittleEndian.Uint16(raw[0:2])),
		Month:  int(raw[2]),
		Day:    int(raw[3]),
		Hour:   int(raw[4]),
		Minute: int(raw[5]),
		Second: int(raw[6]),
		Dotw:   Weekday(raw[7]),
	}, nil
}
