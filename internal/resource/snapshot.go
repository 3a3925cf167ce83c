package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/pact-ai/resdash/internal/errors"
)

// Snapshot is a fully loaded, read-only dataset. Revision changes every time
// a new snapshot is built and identifies the dataset for memoization.
type Snapshot struct {
	Records  []Record
	Source   string
	Revision uint64
	LoadedAt time.Time
}

var revisions atomic.Uint64

// NewSnapshot wraps records in a snapshot with a fresh revision.
func NewSnapshot(source string, records []Record) *Snapshot {
	return &Snapshot{
		Records:  records,
		Source:   source,
		Revision: revisions.Add(1),
		LoadedAt: time.Now(),
	}
}

// Len returns the number of records, treating a nil snapshot as empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Format identifies a snapshot file encoding.
type Format string

// Supported snapshot formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath picks the snapshot format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", errors.NewDataError("cannot infer format from extension", errors.ErrUnsupportedFormat).
			WithSource(path)
	}
}

// Wire shape shared by every format. Timestamps travel as RFC 3339 strings
// so that the three encodings decode identically.
type wireEntry struct {
	Resource wireResource `json:"resource" yaml:"resource" msgpack:"resource"`
}

type wireResource struct {
	Metadata      wireMetadata `json:"metadata" yaml:"metadata" msgpack:"metadata"`
	HumanReadable string       `json:"humanReadableStr" yaml:"humanReadableStr" msgpack:"humanReadableStr"`
	AISummary     *string      `json:"aiSummary,omitempty" yaml:"aiSummary,omitempty" msgpack:"aiSummary,omitempty"`
}

type wireMetadata struct {
	State         string         `json:"state" yaml:"state" msgpack:"state"`
	CreatedTime   string         `json:"createdTime" yaml:"createdTime" msgpack:"createdTime"`
	FetchTime     string         `json:"fetchTime" yaml:"fetchTime" msgpack:"fetchTime"`
	ProcessedTime string         `json:"processedTime,omitempty" yaml:"processedTime,omitempty" msgpack:"processedTime,omitempty"`
	Identifier    wireIdentifier `json:"identifier" yaml:"identifier" msgpack:"identifier"`
	ResourceType  string         `json:"resourceType" yaml:"resourceType" msgpack:"resourceType"`
	Version       string         `json:"version" yaml:"version" msgpack:"version"`
}

type wireIdentifier struct {
	Key       string `json:"key" yaml:"key" msgpack:"key"`
	UID       string `json:"uid" yaml:"uid" msgpack:"uid"`
	PatientID string `json:"patientId" yaml:"patientId" msgpack:"patientId"`
}

// LoadFile reads and validates a snapshot file.
func LoadFile(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("snapshot", path).WithCause(err)
		}
		return nil, errors.Wrapf(err, "reading snapshot %s", path)
	}

	records, err := Decode(format, data)
	if err != nil {
		var dataErr *errors.DataError
		if errors.As(err, &dataErr) {
			dataErr.WithSource(path)
		}
		return nil, err
	}
	return NewSnapshot(path, records), nil
}

// Decode parses and validates snapshot bytes in the given format.
func Decode(format Format, data []byte) ([]Record, error) {
	var entries []wireEntry
	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &entries)
	case FormatYAML:
		err = yaml.Unmarshal(data, &entries)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &entries)
	default:
		return nil, errors.NewDataError("no decoder for format "+string(format), errors.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, errors.NewDataError(err.Error(), errors.ErrMalformedSnapshot)
	}

	records := make([]Record, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		r, err := e.toRecord()
		if err != nil {
			var dataErr *errors.DataError
			if errors.As(err, &dataErr) {
				dataErr.WithIndex(i)
			}
			return nil, err
		}
		if first, dup := seen[r.PatientID()]; dup {
			return nil, errors.NewDataError(
				fmt.Sprintf("patient %s already used by record %d", r.PatientID(), first),
				errors.ErrDuplicatePatient,
			).WithIndex(i).WithField("patientId")
		}
		seen[r.PatientID()] = i
		records = append(records, r)
	}
	return records, nil
}

func (e wireEntry) toRecord() (Record, error) {
	md := e.Resource.Metadata

	if strings.TrimSpace(md.Identifier.PatientID) == "" {
		return Record{}, missing("identifier.patientId")
	}
	if strings.TrimSpace(e.Resource.HumanReadable) == "" {
		return Record{}, missing("humanReadableStr")
	}

	created, err := requiredTime("createdTime", md.CreatedTime)
	if err != nil {
		return Record{}, err
	}
	fetched, err := requiredTime("fetchTime", md.FetchTime)
	if err != nil {
		return Record{}, err
	}

	var processed *time.Time
	if md.ProcessedTime != "" {
		t, err := parseTime("processedTime", md.ProcessedTime)
		if err != nil {
			return Record{}, err
		}
		processed = &t
	}

	return Record{
		Identifier: Identifier{
			Key:       md.Identifier.Key,
			UID:       md.Identifier.UID,
			PatientID: md.Identifier.PatientID,
		},
		ResourceType:  md.ResourceType,
		State:         ParseProcessingState(md.State),
		Version:       ParseFHIRVersion(md.Version),
		CreatedTime:   created,
		FetchTime:     fetched,
		ProcessedTime: processed,
		HumanReadable: e.Resource.HumanReadable,
		AISummary:     e.Resource.AISummary,
	}, nil
}

func missing(field string) error {
	return errors.NewDataError(field+" is required", errors.ErrMissingField).WithField(field)
}

func requiredTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, missing(field)
	}
	return parseTime(field, value)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.NewDataError(
			fmt.Sprintf("cannot parse %q as RFC 3339", value), errors.ErrMalformedTimestamp,
		).WithField(field)
	}
	return t, nil
}

// Encode renders records in the wire shape of the given format.
func Encode(format Format, records []Record) ([]byte, error) {
	entries := make([]wireEntry, len(records))
	for i, r := range records {
		entries[i] = fromRecord(r)
	}

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(entries)
	case FormatMsgpack:
		return msgpack.Marshal(entries)
	default:
		return nil, errors.NewDataError("no encoder for format "+string(format), errors.ErrUnsupportedFormat)
	}
}

// WriteFile encodes records into path using the format implied by its
// extension.
func WriteFile(path string, records []Record) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func fromRecord(r Record) wireEntry {
	md := wireMetadata{
		State:        string(r.State),
		CreatedTime:  r.CreatedTime.Format(time.RFC3339),
		FetchTime:    r.FetchTime.Format(time.RFC3339),
		ResourceType: r.ResourceType,
		Version:      string(r.Version),
		Identifier: wireIdentifier{
			Key:       r.Identifier.Key,
			UID:       r.Identifier.UID,
			PatientID: r.Identifier.PatientID,
		},
	}
	if r.ProcessedTime != nil {
		md.ProcessedTime = r.ProcessedTime.Format(time.RFC3339)
	}
	return wireEntry{Resource: wireResource{
		Metadata:      md,
		HumanReadable: r.HumanReadable,
		AISummary:     r.AISummary,
	}}
}
