package usecase

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestVersionResolver(t *testing.T) {
	ctx := context.Background()

	Convey("Given a VersionResolver", t, func() {
		Convey("When the in-container version command works", func() {
			rt := &fakeRuntime{outputs: map[string]string{
				"photoprism --version": "PhotoPrism 2.1.0 linux-amd64",
			}}
			resolver := NewVersionResolver(rt, nopLogger{})

			Convey("It should use the command output", func() {
				So(resolver.Resolve(ctx, "photoprism", []string{"photoprism", "--version"}), ShouldEqual, "2.1.0")
			})
		})

		Convey("When the version command fails", func() {
			rt := &fakeRuntime{
				failOn:   map[string]error{"photoprism --version": errors.New("exec failed")},
				imageTag: "photoprism/photoprism:2.0.3",
			}
			resolver := NewVersionResolver(rt, nopLogger{})

			Convey("It should fall back to the image tag", func() {
				So(resolver.Resolve(ctx, "photoprism", []string{"photoprism", "--version"}), ShouldEqual, "2.0.3")
			})
		})

		Convey("When both tiers fail", func() {
			rt := &fakeRuntime{
				failOn: map[string]error{"photoprism --version": errors.New("exec failed")},
				tagErr: errors.New("no such container"),
			}
			resolver := NewVersionResolver(rt, nopLogger{})

			Convey("It should resolve to empty without erroring", func() {
				So(resolver.Resolve(ctx, "photoprism", []string{"photoprism", "--version"}), ShouldEqual, "")
			})
		})
	})
}

func TestExtractVersion(t *testing.T) {
	Convey("Given assorted tool output and image references", t, func() {
		cases := map[string]string{
			"PhotoPrism 2.1.0 linux-amd64":           "2.1.0",
			"mariadb from 11.4.2-MariaDB, client...": "11.4.2",
			"photoprism/photoprism:latest":           "",
			"mariadb:11.4":                           "11.4",
			"":                                       "",
		}

		for input, want := range cases {
			So(extractVersion(input), ShouldEqual, want)
		}
	})
}

func TestOrUnknown(t *testing.T) {
	Convey("Empty versions become the placeholder", t, func() {
		So(orUnknown(""), ShouldEqual, "unknown")
		So(orUnknown("2.1.0"), ShouldEqual, "2.1.0")
	})
}
