package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/binplot/binplot/logging"
)

var (
	SavedBinStructCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "saved_bin_struct_total",
		Help: "Number of bin structs saved together with their fields.",
	})

	RejectedSaveCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rejected_bin_struct_save_total",
		Help: "Number of struct saves rejected by validation or the layout check.",
	})

	IngestedFileCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingested_bin_data_total",
		Help: "Number of uploaded bin data files stored.",
	})

	IngestedBytesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingested_bin_data_bytes_total",
		Help: "Bytes of uploaded bin data stored.",
	})

	RejectedUploadCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rejected_upload_total",
		Help: "Number of upload batches rejected by validation.",
	})

	DecodedRecordGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "last_decoded_record_count",
		Help: "Number of records decoded for the latest graph request.",
	})

	MetricsItems = []prometheus.Collector{
		SavedBinStructCounter,
		RejectedSaveCounter,
		IngestedFileCounter,
		IngestedBytesCounter,
		RejectedUploadCounter,
		DecodedRecordGauge,
	}
)

const DefaultMetricsAddress = "0.0.0.0:9090"

type Metrics struct {
	httpAddress string
	registry    *prometheus.Registry
	httpServer  *http.Server
}

func NewMetrics(address string) *Metrics {
	if address == "" {
		address = DefaultMetricsAddress
	}
	return &Metrics{
		httpAddress: address,
		registry:    prometheus.NewRegistry(),
	}
}

func (m *Metrics) Start() {
	m.registry.MustRegister(MetricsItems...)
	go m.serve()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) serve() {
	router := mux.NewRouter()
	router.Path("/metrics").Handler(m.Handler())
	m.httpServer = &http.Server{
		Addr:    m.httpAddress,
		Handler: router,
	}
	if err := m.httpServer.ListenAndServe(); err != nil {
		logging.Logger.Errorf("failed to listen and serve, err=%s", err.Error())
		panic(err)
	}
}
