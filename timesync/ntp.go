package timesync

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/beevik/ntp"
)

const DEFAULTQUERYTIMEOUT = time.Second * 30

type NtpSync struct {
	Servers      []string
	QueryTimeout time.Duration
}

func GetDefaultPoolNTP() NtpSync {
	return NtpSync{
		Servers:      []string{"0.pool.ntp.org", "1.pool.ntp.org", "2.pool.ntp.org", "3.pool.ntp.org"},
		QueryTimeout: DEFAULTQUERYTIMEOUT,
	}
}

//querySingle asks one server and applies offset to local clock
func (p *NtpSync) querySingle(name string) (time.Time, error) {
	resp, err := ntp.QueryWithOptions(name, ntp.QueryOptions{Timeout: p.QueryTimeout})
	if err != nil {
		return time.Time{}, err
	}
	errValid := resp.Validate()
	if errValid != nil {
		return time.Time{}, fmt.Errorf("invalid response: %v", errValid)
	}
	return time.Now().Add(resp.ClockOffset), nil
}

//GetTime tries servers in random order until one gives valid response. Randomizing spreads load on server pool
func (p *NtpSync) GetTime() (time.Time, error) {
	if p.QueryTimeout < time.Millisecond*100 {
		p.QueryTimeout = DEFAULTQUERYTIMEOUT
	}

	lst := make([]string, len(p.Servers))
	copy(lst, p.Servers)
	rand.Shuffle(len(lst), func(i, j int) {
		lst[i], lst[j] = lst[j], lst[i]
	})

	errList := []string{}
	for _, name := range lst {
		t, err := p.querySingle(name)
		if err == nil {
			return t, nil
		}
		errList = append(errList, fmt.Sprintf("%s: %s", name, err))
	}
	return time.Time{}, fmt.Errorf("failed NTP servers [%s]", strings.Join(errList, ","))
}
