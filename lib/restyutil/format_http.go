package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"
)

// writeHeaders writes one "Key: Value" line per header value, sorted by key
// so dumps of the same exchange diff cleanly.
func writeHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

func requestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	// resty installs a GetBody that returns a nil body for bodyless requests.
	if body == nil {
		return ""
	}
	defer body.Close()
	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(contents)
}

// formatHttpMessage renders a request/response pair as plain text, the
// request section first.
func formatHttpMessage(res *resty.Response) string {
	var out strings.Builder

	out.WriteString("---- REQUEST ----\n\n")
	fmt.Fprintf(&out, "%s %s\n\n", res.Request.Method, res.Request.URL)
	if res.Request.RawRequest != nil {
		writeHeaders(&out, res.Request.RawRequest.Header)
	}
	if body := requestBody(res.Request.RawRequest); body != "" {
		out.WriteString("\n")
		out.WriteString(body)
		out.WriteString("\n")
	}

	responseURL := res.Request.URL
	if res.RawResponse != nil {
		location, err := res.RawResponse.Location()
		if err == nil {
			responseURL = location.String()
		}
	}

	out.WriteString("\n---- RESPONSE ----\n\n")
	fmt.Fprintf(&out, "%d %s\n\n", res.StatusCode(), responseURL)
	writeHeaders(&out, res.Header())
	out.WriteString("\n")
	out.Write(res.Body())

	return out.String()
}
