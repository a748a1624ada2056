/*
Default rtc initialization

Helper function that does initialization that is good enough for many embedded
linux use cases. Acts also as example use. Not possible to unit test well
*/
package linuxrtc

import (
	"fmt"

	"github.com/hjkoskel/fixregsto"

	"github.com/hjkoskel/rtcgopher"
)

const DEFAULTDBFILE_SETLOG = "clockset.log"

/*
CreateDefaultRtc opens /dev/rtc0 and attaches file backed set event log under logDir
*/
func CreateDefaultRtc(logDir string) (*rtcgopher.Rtc, error) {
	dev, errDev := Open(DEFAULTDEVICE)
	if errDev != nil {
		return nil, fmt.Errorf("opening rtc device err %v", errDev)
	}

	confSetLog := fixregsto.FileStorageConf{
		Name:         DEFAULTDBFILE_SETLOG,
		RecordSize:   rtcgopher.RECORDSIZE_SETEVENT,
		MaxFileCount: 256,
		FileMaxSize:  512 * 4,
		Path:         logDir,
	}
	stoSetLog, errSto := confSetLog.InitFileStorage()
	if errSto != nil {
		return nil, fmt.Errorf("setlog init err %v", errSto)
	}
	setLog, errLog := rtcgopher.CreateSetLog(&stoSetLog)
	if errLog != nil {
		return nil, fmt.Errorf("setlog create err %v", errLog)
	}

	result, errRtc := rtcgopher.NewRtc(0, dev, &setLog)
	if errRtc != nil {
		return nil, fmt.Errorf("NewRtc error %v", errRtc)
	}
	return result, nil
}
