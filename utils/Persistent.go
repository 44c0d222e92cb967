package utils

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/poppolopoppo/syncproj/internal/base"
)

var LogPersistent = base.NewLogCategory("Persistent")

/***************************************
 * UpdateStatus
 ***************************************/

type UpdateStatus byte

const (
	UPDATE_UPTODATE UpdateStatus = iota
	UPDATE_UPDATED
	UPDATE_ERROR
)

var updateStatusTags = base.EnumTagTable[UpdateStatus]{
	{"up-to-date", UPDATE_UPTODATE},
	{"updated", UPDATE_UPDATED},
	{"error", UPDATE_ERROR},
}

func (x UpdateStatus) String() string {
	return base.EnumString(x, updateStatusTags)
}
func (x *UpdateStatus) Set(in string) error {
	return base.ParseEnum(x, in, updateStatusTags)
}
func (x UpdateStatus) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *UpdateStatus) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * UpdateLedger
 ***************************************/

type UpdateEntry struct {
	Path        string           `json:"path"`
	Status      UpdateStatus     `json:"status"`
	Fingerprint base.Fingerprint `json:"fingerprint"`
	Error       string           `json:"error,omitempty"`
}

// UpdateLedger keeps track of every file touched during a run, in order.
type UpdateLedger struct {
	mutex   sync.Mutex
	entries []UpdateEntry
}

func NewUpdateLedger() *UpdateLedger {
	return &UpdateLedger{}
}

func (x *UpdateLedger) Record(path string, status UpdateStatus, fingerprint base.Fingerprint, err error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	entry := UpdateEntry{Path: path, Status: status, Fingerprint: fingerprint}
	if err != nil {
		entry.Error = err.Error()
	}
	x.entries = append(x.entries, entry)
}

func (x *UpdateLedger) Entries() []UpdateEntry {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	return base.CopySlice(x.entries...)
}

func (x *UpdateLedger) Count(status UpdateStatus) (n int) {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	for _, it := range x.entries {
		if it.Status == status {
			n++
		}
	}
	return
}

func (x *UpdateLedger) Find(path string) (UpdateEntry, bool) {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	for i := len(x.entries) - 1; i >= 0; i-- {
		if x.entries[i].Path == path {
			return x.entries[i], true
		}
	}
	return UpdateEntry{}, false
}

func (x *UpdateLedger) DumpJson(dst io.Writer) error {
	return base.JsonSerialize(struct {
		Files []UpdateEntry `json:"files"`
	}{x.Entries()}, dst, base.OptionJsonPrettyPrint(true))
}

/***************************************
 * UpdateFile
 ***************************************/

// UpdateFile renders dst in memory and only touches the disk when the content
// differs from what is already there, line endings aside.
func UpdateFile(ledger *UpdateLedger, dst Filename, render func(io.Writer) error) (updated bool, err error) {
	var fingerprint base.Fingerprint
	defer func() {
		if ledger == nil {
			return
		}
		status := UPDATE_UPTODATE
		switch {
		case err != nil:
			status = UPDATE_ERROR
		case updated:
			status = UPDATE_UPDATED
		}
		ledger.Record(dst.String(), status, fingerprint, err)
	}()

	var buffer bytes.Buffer
	if err = render(&buffer); err != nil {
		return
	}

	content := base.NormalizeNewlines(buffer.String())
	fingerprint = base.StringFingerprint(content)

	if previous, er := os.ReadFile(dst.String()); er == nil {
		if base.NormalizeNewlines(base.UnsafeStringFromBytes(previous)) == content {
			base.LogVeryVerbose(LogPersistent, "%v is up-to-date", dst)
			return
		}
	} else if !os.IsNotExist(er) {
		err = er
		return
	}

	err = UFS.CreateBuffered(dst, func(w io.Writer) error {
		_, er := io.WriteString(w, content)
		return er
	})
	if err == nil {
		updated = true
		base.LogInfo(LogPersistent, "updated %v", dst)
	}
	return
}
