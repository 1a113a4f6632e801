package downloader

import (
	"bufio"
	"encoding/base64"
	"fmt"
	u "net/url"
	"strconv"
	"strings"
)

const requestUserAgent = "Mozilla/5.0"

// splitURL reduces a source URL to the pieces the wire format needs:
// the host to dial and put in the Host header, an explicit port if the
// URL carries one (0 otherwise), and the request target with the query
// string reattached.
func splitURL(rawURL string) (host string, port int, target string, err error) {
	parsed, err := u.Parse(rawURL)
	if err != nil {
		return "", 0, "", err
	}
	host = parsed.Hostname()
	if host == "" {
		return "", 0, "", fmt.Errorf("no host in URL %q", rawURL)
	}
	if p := parsed.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return "", 0, "", fmt.Errorf("invalid port in URL %q", rawURL)
		}
	}
	target = parsed.Path
	if target == "" {
		target = "/"
	}
	if parsed.RawQuery != "" {
		target = target + "?" + parsed.RawQuery
	}
	return host, port, target, nil
}

func buildRequest(target, host string, auth *Credentials) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GET %s HTTP/1.1\r\n", target)
	if auth != nil {
		pair := base64.StdEncoding.EncodeToString([]byte(auth.Login + ":" + auth.Password))
		fmt.Fprintf(&b, "Authorization: Basic %s\r\n", pair)
	}
	fmt.Fprintf(&b, "Host: %s\r\n", host)
	fmt.Fprintf(&b, "User-Agent: %s\r\n", requestUserAgent)
	b.WriteString("Keep-Alive: 115\r\n")
	b.WriteString("Connection: keep-alive\r\n")
	b.WriteString("\r\n")
	return b.String()
}

// readResponseHeader consumes lines up to the bare CRLF separating the
// header block from the body. Remaining buffered bytes in r belong to
// the body.
func readResponseHeader(r *bufio.Reader) (status string, headers []string, err error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return "", nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return status, headers, nil
		}
		if status == "" {
			status = line
			continue
		}
		headers = append(headers, line)
	}
}

// contentLength scans for a Content-Length header, case-insensitively.
// Absent or malformed values degrade to 0, which shifts body
// termination onto end-of-stream.
func contentLength(headers []string) int64 {
	for _, header := range headers {
		name, value, found := strings.Cut(header, ":")
		if !found {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}
		length, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0
		}
		return length
	}
	return 0
}
