package fiberlog

import (
	"strings"
	"time"

	"mock-interview-backend/lib/utils/helpers"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid     = "pid"
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagBody    = "body"
	TagResBody = "resBody"
	TagUserID  = "user_id"
	RequestID  = "request_id"
)

// data данные одного запроса
type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag возвращает значение тега для записи лога
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
				return "multipart"
			}
			return truncateBody(c.Body(), cfg.bodyLimit())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			if len(c.Response().Header.Peek(helpers.HeaderLogIgnore)) != 0 {
				return ""
			}
			return truncateBody(c.Response().Body(), cfg.bodyLimit())
		},
		TagUserID: func(c *fiber.Ctx, d *data) interface{} {
			userID, _ := c.Locals(TagUserID).(string)
			return userID
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func truncateBody(body []byte, limit int) string {
	if len(body) > limit {
		return string(body[:limit]) + "…"
	}
	return string(body)
}
