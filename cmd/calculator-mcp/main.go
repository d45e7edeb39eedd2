package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/observability"
)

const version = "0.1.0"

func main() {
	var (
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("calculator-mcp v" + version)
		os.Exit(0)
	}

	if err := observability.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer observability.SyncLogger()

	mcpServer := server.NewMCPServer(
		"calculator-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	addPressKeysTool(mcpServer)
	addCalculateTool(mcpServer)

	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			observability.Logger.Fatal("stdio server failed", zap.Error(err))
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer)
	addr := fmt.Sprintf(":%d", *portFlag)
	observability.Logger.Info("starting MCP HTTP server", zap.String("addr", addr))
	if err := httpServer.Start(addr); err != nil {
		observability.Logger.Fatal("HTTP server failed", zap.Error(err))
	}
}

func addPressKeysTool(s *server.MCPServer) {
	tool := mcp.NewTool("press_keys",
		mcp.WithDescription("Press calculator keys in order on a fresh calculator and return the final display. "+
			"Keys: 0-9 . + - * / ^ = % +/- AC sin cos tan ln log10. Operators chain left to right without precedence."),
		mcp.WithString("keys",
			mcp.Required(),
			mcp.Description("Space-separated keys, e.g. \"2 + 3 * 4 =\""),
		),
	)

	s.AddTool(tool, handlePressKeys)
}

func handlePressKeys(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys, ok := request.GetArguments()["keys"].(string)
	if !ok {
		return mcp.NewToolResultError("keys is required"), nil
	}

	display, err := pressKeys(keys)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(display), nil
}

// pressKeys classifies every key before pressing any, so a typo fails the
// whole call instead of producing a partial result.
func pressKeys(keys string) (string, error) {
	fields := strings.Fields(keys)
	if len(fields) == 0 {
		return "", fmt.Errorf("no keys given")
	}

	tokens := make([]calculator.Token, 0, len(fields))
	for _, f := range fields {
		tok, err := calculator.ParseToken(f)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, tok)
	}

	calc := calculator.New()
	for _, tok := range tokens {
		calc.Press(tok)
	}
	return calc.CurrentDisplay(), nil
}

func addCalculateTool(s *server.MCPServer) {
	tool := mcp.NewTool("calculate",
		mcp.WithDescription("Fold b into a with one binary operator and return the calculator display (\"Error\" on failure)."),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("Left operand")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Right operand")),
		mcp.WithString("operator",
			mcp.Required(),
			mcp.Description("One of + - * / ^"),
			mcp.Enum("+", "-", "*", "/", "^"),
		),
	)

	s.AddTool(tool, handleCalculate)
}

func handleCalculate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	a, ok := args["a"].(float64)
	if !ok {
		return mcp.NewToolResultError("a must be a number"), nil
	}
	b, ok := args["b"].(float64)
	if !ok {
		return mcp.NewToolResultError("b must be a number"), nil
	}
	op, ok := args["operator"].(string)
	if !ok || !calculator.Operator(op).Valid() {
		return mcp.NewToolResultError("operator must be one of + - * / ^"), nil
	}

	return mcp.NewToolResultText(calculator.Calculate(a, b, calculator.Operator(op))), nil
}
