package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"gopkg.in/ini.v1"
)

type Config struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
	AllowAnyOrigin  bool
}

// LoadConfig reads the [server] section.
func LoadConfig(file *ini.File) Config {
	sec := file.Section("server")
	return Config{
		Addr:            sec.Key("Addr").MustString(":9000"),
		ReadBufferSize:  sec.Key("ReadBufferSize").MustInt(1024),
		WriteBufferSize: sec.Key("WriteBufferSize").MustInt(1024),
		AllowAnyOrigin:  sec.Key("AllowAnyOrigin").MustBool(true),
	}
}

func (c Config) Upgrader() websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  c.ReadBufferSize,
		WriteBufferSize: c.WriteBufferSize,
	}
	if c.AllowAnyOrigin {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
	return upgrader
}
