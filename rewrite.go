package rpcdoc

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Call is an outgoing HTTP call as the interactive console sees it.
type Call struct {
	URL    string
	Method string
	Body   string
	Header map[string]string
}

// trailingCallPattern matches the "/{endpoint}/{method}" tail of a
// documented path.
var trailingCallPattern = regexp.MustCompile(`/([^/]+)/([^/]+)$`)

// RewriteCall translates a REST-shaped documented call into the RPC
// transport's native shape: POST to the endpoint path with the method name
// (and any query parameters) folded into the JSON body.
//
// Calls whose URL does not end in an endpoint/method pair pass through
// unchanged. A malformed existing body is non-fatal: it is treated as
// empty and overwritten.
//
// consoleInterceptorJS is the browser-side mirror of this function; the
// two must stay in lockstep.
func RewriteCall(c Call) Call {
	u, err := url.Parse(c.URL)
	if err != nil {
		return c
	}
	m := trailingCallPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return c
	}
	methodName := m[2]
	u.Path = strings.TrimSuffix(u.Path, "/"+methodName)

	body := map[string]any{}
	if c.Body != "" {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(c.Body), &parsed); err == nil && parsed != nil {
			body = parsed
		}
	}

	verb := strings.ToUpper(c.Method)
	if (verb == "GET" || verb == "HEAD") && u.RawQuery != "" {
		for key, values := range u.Query() {
			if len(values) == 0 {
				continue
			}
			body[key] = coerceQueryValue(values[len(values)-1])
		}
		u.RawQuery = ""
	}

	body["method"] = methodName

	encoded, err := json.Marshal(body)
	if err != nil {
		return c
	}

	out := c
	out.URL = u.String()
	out.Method = "POST"
	out.Body = string(encoded)
	out.Header = make(map[string]string, len(c.Header)+1)
	for k, v := range c.Header {
		out.Header[k] = v
	}
	out.Header["Content-Type"] = "application/json"
	return out
}

// numericQueryPattern gates numeric coercion. Both coercers apply this
// exact rule so the Go and JS sides agree on edge inputs (" ", "0x10" and
// other spellings Number() would accept stay strings on both sides).
var numericQueryPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// coerceQueryValue recovers typed values from their query-string spelling:
// "true"/"false" become booleans, decimal numerals become numbers,
// everything else stays a string. Out-of-range numerals stay strings so
// the coerced value always survives JSON encoding.
func coerceQueryValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if numericQueryPattern.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// consoleInterceptorJS is the browser-side request interceptor embedded in
// the interactive console page. It mirrors RewriteCall exactly.
const consoleInterceptorJS = `function rewriteRequest(req) {
  var url;
  try { url = new URL(req.url); } catch (e) { return req; }
  var m = url.pathname.match(/\/([^\/]+)\/([^\/]+)$/);
  if (!m) return req;
  url.pathname = url.pathname.slice(0, url.pathname.length - m[2].length - 1);
  var body = {};
  if (req.body) {
    try {
      var parsed = JSON.parse(req.body);
      if (parsed && typeof parsed === "object" && !Array.isArray(parsed)) body = parsed;
    } catch (e) {}
  }
  var numeric = /^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$/;
  var verb = (req.method || "GET").toUpperCase();
  if ((verb === "GET" || verb === "HEAD") && url.search) {
    url.searchParams.forEach(function (value, key) {
      if (value === "true") body[key] = true;
      else if (value === "false") body[key] = false;
      else if (numeric.test(value) && isFinite(Number(value))) body[key] = Number(value);
      else body[key] = value;
    });
    url.search = "";
  }
  body.method = m[2];
  req.url = url.toString();
  req.method = "POST";
  req.body = JSON.stringify(body);
  req.headers = req.headers || {};
  req.headers["Content-Type"] = "application/json";
  return req;
}`
