package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/semmidev/photark/internal/config"
)

func TestDumpStepStandalone(t *testing.T) {
	ctx := context.Background()

	Convey("Given a standalone-mode configuration", t, func() {
		cfg := newTestConfig(t)
		cfg.Mode = config.ModeStandalone
		cfg.DataPath = t.TempDir()
		rt := &fakeRuntime{outputs: map[string]string{
			"mariadb --version": "mariadb from 11.4.2-MariaDB",
		}}
		step := NewDumpStep(rt, NewVersionResolver(rt, nopLogger{}), cfg, nopLogger{})

		Convey("When the dump directory does not exist yet", func() {
			dumpDir := cfg.DumpDir()
			So(dumpDir, ShouldEqual, filepath.Join(cfg.BackupPath, "database"))
			_, statErr := os.Stat(dumpDir)
			So(os.IsNotExist(statErr), ShouldBeTrue)

			path, err := step.Execute(ctx)

			Convey("It should create the directory and dump into it", func() {
				So(err, ShouldBeNil)
				So(filepath.Dir(path), ShouldEqual, dumpDir)
				info, err := os.Stat(path)
				So(err, ShouldBeNil)
				So(info.Size(), ShouldBeGreaterThan, 0)
			})

			Convey("It should substitute the placeholder for the unresolved app version", func() {
				So(filepath.Base(path), ShouldEqual, "photoprism-unknown-mariadb-11.4.2.sql")
			})
		})
	})
}
