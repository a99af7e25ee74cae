package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given the Logger package", t, func() {
		Convey("When creating a logger with console output only", func() {
			log, err := New("info", "")

			Convey("It should log without panicking", func() {
				So(err, ShouldBeNil)
				So(log, ShouldNotBeNil)
				So(func() { log.Infof("backup started") }, ShouldNotPanic)
			})
		})

		Convey("When creating a logger with a file sink", func() {
			logFile := filepath.Join(t.TempDir(), "backup.log")
			log, err := New("debug", logFile)

			Convey("It should create the log file", func() {
				So(err, ShouldBeNil)
				log.Debugf("dump size: %d", 42)
				log.Close()

				_, statErr := os.Stat(logFile)
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When the level is unparseable", func() {
			log, err := New("chatty", "")

			Convey("It should fall back to info", func() {
				So(err, ShouldBeNil)
				So(log.Desugar().Core().Enabled(0), ShouldBeTrue)  // InfoLevel
				So(log.Desugar().Core().Enabled(-1), ShouldBeFalse) // DebugLevel
			})
		})

		Convey("When the log directory cannot be created", func() {
			log, err := New("info", "/proc/none/backup.log")

			Convey("It should return an error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "failed to create log directory")
				So(log, ShouldBeNil)
			})
		})
	})
}
