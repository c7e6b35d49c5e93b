package response

import "net/http"

// Resp is the envelope every ops endpoint answers with. Code mirrors the
// HTTP status, 0 on success.
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

const CodeOK = 0

func OK(data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: CodeOK, Msg: "OK", Data: data}
}

// Error uses the status text when msg is empty.
func Error(status int, msg string) Resp {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return Resp{Code: status, Msg: msg, Data: struct{}{}}
}
