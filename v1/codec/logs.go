package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ApacheTimeLayout is the timestamp layout of the common log format.
const ApacheTimeLayout = "02/Jan/2006:15:04:05 -0700"

// Matches both the common and the combined log format.
var apacheLogLine = regexp.MustCompile(
	`^(\S+) (\S+) (\S+) \[([^\]]+)\] "((?:[^"\\]|\\.)*)" (\d{3}) (\S+)(?: "((?:[^"\\]|\\.)*)" "((?:[^"\\]|\\.)*)")?`,
)

// ApacheLogRecord is one parsed access log line. Fields logged as "-" are
// left empty; Bytes is 0 in that case.
type ApacheLogRecord struct {
	RemoteHost string    `json:"remote_host"`
	Ident      string    `json:"ident,omitempty"`
	User       string    `json:"user,omitempty"`
	Time       time.Time `json:"time"`
	Request    string    `json:"request"`
	Method     string    `json:"method,omitempty"`
	Path       string    `json:"path,omitempty"`
	Protocol   string    `json:"protocol,omitempty"`
	Status     int       `json:"status"`
	Bytes      int64     `json:"bytes"`
	Referer    string    `json:"referer,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
}

// ApacheLogCodec decodes Apache httpd access log lines. It is decode-only.
type ApacheLogCodec struct{}

func (ApacheLogCodec) Scheme() Scheme { return SchemeApacheLog }

// Decode parses payload into an ApacheLogRecord.
func (ApacheLogCodec) Decode(payload []byte) (any, error) {
	line := trimLine(string(payload))
	m := apacheLogLine.FindStringSubmatch(line)
	if m == nil {
		return nil, ErrMalformedLogLine
	}

	ts, err := time.Parse(ApacheTimeLayout, m[4])
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp %q: %v", ErrMalformedLogLine, m[4], err)
	}
	status, _ := strconv.Atoi(m[6])

	rec := ApacheLogRecord{
		RemoteHost: m[1],
		Ident:      dashToEmpty(m[2]),
		User:       dashToEmpty(m[3]),
		Time:       ts,
		Request:    m[5],
		Status:     status,
		Referer:    dashToEmpty(m[8]),
		UserAgent:  dashToEmpty(m[9]),
	}
	if m[7] != "-" {
		n, err := strconv.ParseInt(m[7], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: size %q", ErrMalformedLogLine, m[7])
		}
		rec.Bytes = n
	}
	if parts := strings.Fields(rec.Request); len(parts) == 3 {
		rec.Method, rec.Path, rec.Protocol = parts[0], parts[1], parts[2]
	}
	return rec, nil
}

// LogRawCodec decodes a payload as a single unparsed log line: trailing line
// terminators are removed and invalid UTF-8 is replaced. It is decode-only.
type LogRawCodec struct{}

func (LogRawCodec) Scheme() Scheme { return SchemeLogRaw }

// Decode returns the line as a string.
func (LogRawCodec) Decode(payload []byte) (any, error) {
	return strings.ToValidUTF8(trimLine(string(payload)), "�"), nil
}

func trimLine(s string) string {
	return strings.TrimRight(s, "\r\n")
}

func dashToEmpty(s string) string {
	if s == "-" {
		return ""
	}
	return s
}
