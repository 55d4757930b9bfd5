// Command uartloop runs a host-to-device loopback over the simulated UART
// timing engine. It chunks the input text into inbound words, sends each
// chunk through the line, lets an echoing consumer compute the outbound
// word, and prints the round-tripped text, the same flow the original
// host-side utility performed against a physical serial port.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/OscarVsp/ELEC-H409-UART-Interface/sim"
	"github.com/OscarVsp/ELEC-H409-UART-Interface/trace"
	"github.com/OscarVsp/ELEC-H409-UART-Interface/uart"
)

var (
	clockHz   uint64
	byteRate  uint64
	inSize    int
	outSize   int
	tracePath string
)

var rootCmd = &cobra.Command{
	Use:   "uartloop [text]",
	Short: "Round-trip text through the simulated UART interface.",
	Long: `uartloop chunks the given text into inbound words, transmits ` +
		`each chunk over the simulated serial line, and prints the words ` +
		`echoed back by the device.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		if text == "" {
			text = "ELEC-H409 UART interface"
		}

		run(text)
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.Flags().Uint64Var(&clockHz, "clock",
		envUint("UARTLOOP_CLOCK", 50_000_000), "execution clock in Hz")
	rootCmd.Flags().Uint64Var(&byteRate, "baud",
		envUint("UARTLOOP_BAUD", 230400), "byte rate on the line")
	rootCmd.Flags().IntVar(&inSize, "in-size",
		int(envUint("UARTLOOP_IN_SIZE", 16)), "inbound word size in bytes")
	rootCmd.Flags().IntVar(&outSize, "out-size",
		int(envUint("UARTLOOP_OUT_SIZE", 16)), "outbound word size in bytes")
	rootCmd.Flags().StringVar(&tracePath, "trace",
		os.Getenv("UARTLOOP_TRACE"), "record events to this SQLite file")
}

func envUint(key string, fallback uint64) uint64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: %v\n", key, s, err)
		return fallback
	}

	return v
}

func run(text string) {
	engine := sim.NewSerialEngine()

	device := uart.MakeBuilder().
		WithEngine(engine).
		WithClock(clockHz).
		WithByteRate(byteRate).
		WithInboundSize(inSize).
		WithOutboundSize(outSize).
		Build("Device")

	host := uart.MakeHostBuilder().
		WithEngine(engine).
		WithClock(clockHz).
		WithByteRate(byteRate).
		Build("Host")

	echo := uart.MakeAgentBuilder().
		WithEngine(engine).
		WithFreq(sim.Freq(clockHz) * sim.Hz).
		WithTransform(echoTransform).
		Build("Echo")

	lineConn := sim.NewDirectConnection(
		"LineConn", engine, sim.Freq(clockHz)*sim.Hz)
	lineConn.PlugIn(host.LinePort)
	lineConn.PlugIn(device.LinePort)

	wordConn := sim.NewDirectConnection(
		"WordConn", engine, sim.Freq(clockHz)*sim.Hz)
	wordConn.PlugIn(device.WordPort)
	wordConn.PlugIn(echo.WordPort)

	host.LineDst = device.LinePort
	device.LineDst = host.LinePort
	device.ConsumerDst = echo.WordPort

	if tracePath != "" {
		tracer := trace.NewTracer(engine, trace.NewRecorder(tracePath))
		device.AcceptHook(tracer)
		host.AcceptHook(tracer)
	}

	chunks := divideChunks([]byte(text), inSize)
	fmt.Printf("Encoded text: %s\n", hex.EncodeToString([]byte(text)))
	fmt.Printf("%d chunk(s) to send\n", len(chunks))

	var output []byte
	for i, chunk := range chunks {
		fmt.Printf("Sending chunk %d: %s -> ", i, hex.EncodeToString(chunk))

		host.DiscardReceived()
		host.Send(chunk)

		if err := engine.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
			os.Exit(1)
		}

		reply := host.Received()
		fmt.Printf("%s\n", hex.EncodeToString(reply))
		output = append(output, reply...)
	}

	if len(output) > len(text) {
		output = output[:len(text)]
	}

	fmt.Printf("Output text:\n%q\n", string(output))
}

// divideChunks splits data into inbound-word-sized chunks, padding the last
// one with '0' filler bytes the way the original host tool did.
func divideChunks(data []byte, size int) [][]byte {
	var chunks [][]byte

	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}

		chunk := make([]byte, size)
		copy(chunk, data[i:end])
		for j := end - i; j < size; j++ {
			chunk[j] = '0'
		}

		chunks = append(chunks, chunk)
	}

	return chunks
}

// echoTransform keeps the low outbound-word prefix of the inbound word,
// padding with '0' if the outbound word is wider.
func echoTransform(word []byte) []byte {
	result := make([]byte, outSize)
	for i := range result {
		if i < len(word) {
			result[i] = word[i]
		} else {
			result[i] = '0'
		}
	}

	return result
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
