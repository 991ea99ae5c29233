package encyc

import (
	"medicollector/lib/restyutil"
	"medicollector/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("medicollector.lib.scrapers.encyc")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

func restyutilInstrument(client *resty.Client) {
	telemetry.InstrumentResty(client, "medicollector.lib.scrapers.encyc.http")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
}
