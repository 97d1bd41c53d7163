package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/bluetrax/bluetrax/internal/devclass"
)

// timeLayout renders timestamps in local time with microsecond precision.
const timeLayout = "2006-01-02 15:04:05.000000"

// csvHeader is the fixed first row of the text output.
var csvHeader = []string{"type", "time", "bdaddr", "services", "major", "minor", "rssi"}

// WriteCSV reads the binary log to its end and renders one text row per
// record. Fields a record kind does not carry are left empty. Decoding
// stops at the first malformed entry; a truncated log fails rather than
// emitting a partial row.
func WriteCSV(w io.Writer, r *Reader) error {
	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := out.Write(row(rec)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	out.Flush()
	return out.Error()
}

func row(r Record) []string {
	switch rec := r.(type) {
	case CycleComplete:
		return []string{"complete", renderTime(rec.Time), "", "", "", "", ""}
	case Discovery:
		fields := deviceFields("inquiry", rec.Time, rec.Addr, rec.Class)
		return append(fields, "")
	case DiscoveryWithSignal:
		fields := deviceFields("inquiry", rec.Time, rec.Addr, rec.Class)
		return append(fields, strconv.Itoa(int(rec.RSSI)))
	}
	panic(fmt.Sprintf("record: unknown record type %T", r))
}

func deviceFields(kind string, ts Timestamp, addr Addr, class [3]byte) []string {
	major, minor := devclass.Classify(devclass.Major(class), devclass.Minor(class))
	return []string{
		kind,
		renderTime(ts),
		addr.String(),
		strconv.Itoa(int(devclass.Service(class))),
		major,
		minor,
	}
}

func renderTime(ts Timestamp) string {
	return ts.Time().Format(timeLayout)
}
