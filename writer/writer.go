package writer

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/lukehollenback/clientapi/codec"
	"github.com/lukehollenback/clientapi/exchange"
	"github.com/pkg/errors"
)

const (
	IDKey        = "Id"
	SymbolKey    = "Symbol"
	TimestampKey = "Time"
	SideKey      = "OrderType"
	PriceKey     = "Price"
	VolumeKey    = "Volume"
	OpenKey      = "Open"
	HighKey      = "High"
	LowKey       = "Low"
	CloseKey     = "Close"
)

var (
	tradeHeader  = []string{IDKey, SymbolKey, TimestampKey, SideKey, PriceKey, VolumeKey}
	candleHeader = []string{SymbolKey, TimestampKey, OpenKey, HighKey, LowKey, CloseKey, VolumeKey}
)

// ErrMixedRecords is returned when trades and candles are written to the same output.
var ErrMixedRecords = errors.New("output already holds a different kind of record")

//
// Writer outputs fetched market data as CSV. Decimals and timestamps are rendered exactly as they
// travel on the wire. The header row is written before the first record; a Writer only ever holds
// one kind of record.
//
type Writer struct {
	csv    *csv.Writer
	header []string
}

//
// New creates a Writer on top of w. Nothing is written until the first call to WriteTrades or
// WriteCandles, and nothing is guaranteed to reach w until Flush is called.
//
func New(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteTrades writes one row per trade.
func (o *Writer) WriteTrades(trades []exchange.Trade) error {
	if err := o.writeHeader(tradeHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := o.csv.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Ticker,
			codec.EncodeTime(t.Time),
			t.OrderType.String(),
			codec.EncodeDecimal(t.Price),
			codec.EncodeDecimal(t.Volume),
		})
		if err != nil {
			return errors.Wrap(err, "failed to write trade row")
		}
	}

	return nil
}

// WriteCandles writes one row per candle.
func (o *Writer) WriteCandles(candles []exchange.Candle) error {
	if err := o.writeHeader(candleHeader); err != nil {
		return err
	}

	for _, c := range candles {
		err := o.csv.Write([]string{
			c.Symbol,
			codec.EncodeTime(c.Time),
			codec.EncodeDecimal(c.Open),
			codec.EncodeDecimal(c.High),
			codec.EncodeDecimal(c.Low),
			codec.EncodeDecimal(c.Close),
			codec.EncodeDecimal(c.Volume),
		})
		if err != nil {
			return errors.Wrap(err, "failed to write candle row")
		}
	}

	return nil
}

// Flush writes any buffered rows to the underlying writer.
func (o *Writer) Flush() error {
	o.csv.Flush()

	return errors.Wrap(o.csv.Error(), "failed to flush csv output")
}

func (o *Writer) writeHeader(header []string) error {
	if o.header != nil {
		if o.header[0] != header[0] {
			return ErrMixedRecords
		}

		return nil
	}

	o.header = header

	return errors.Wrap(o.csv.Write(header), "failed to write header row")
}
