package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"wordbrowse/internal/application"
	"wordbrowse/internal/domain"
	"wordbrowse/internal/ports"
)

const maxWords = 20

// WordLoader loads the word collection, from the cache when possible
type WordLoader interface {
	Load(ctx context.Context, onProgress ports.ProgressFunc) (*application.LoadResult, error)
}

// RegisterTools adds the word tools to the MCP server.
func RegisterTools(s *server.MCPServer, loader WordLoader, cache ports.CacheAdmin) {
	s.AddTool(randomWordTool(), randomWordHandler(loader))
	s.AddTool(cacheInfoTool(), cacheInfoHandler(cache))
}

// --- random_word ---

func randomWordTool() mcp.Tool {
	return mcp.NewTool("random_word",
		mcp.WithDescription("Pick random words from the Chinese word dictionary. Returns each word with its pinyin and explanation. The first call may download the dictionary."),
		mcp.WithNumber("count",
			mcp.Description(fmt.Sprintf("Number of words to return (1-%d, default 1)", maxWords)),
		),
	)
}

func randomWordHandler(loader WordLoader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		count := req.GetInt("count", 1)
		if count < 1 || count > maxWords {
			return toolError(fmt.Errorf("count must be between 1 and %d, got %d", maxWords, count))
		}

		result, err := loader.Load(ctx, nil)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for i := range count {
			w, ok := domain.RandomWord(result.Words)
			if !ok {
				return mcp.NewToolResultText("The word list is empty."), nil
			}
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(formatWord(w))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- cache_info ---

func cacheInfoTool() mcp.Tool {
	return mcp.NewTool("cache_info",
		mcp.WithDescription("Report how many words are cached locally and when the cache was last written."),
	)
}

func cacheInfoHandler(cache ports.CacheAdmin) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info, err := cache.Info(ctx)
		if err != nil {
			return toolError(err)
		}
		if info.Count == 0 {
			return mcp.NewToolResultText("Cache is empty."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d words, updated %s",
			info.Count, info.UpdatedAt.UTC().Format(time.RFC3339))), nil
	}
}

func formatWord(w domain.WordRecord) string {
	explanation := strings.TrimSpace(w.Explanation)
	if explanation == "" {
		explanation = "(no explanation)"
	}
	return fmt.Sprintf("%s  %s\n%s\n", w.Word, w.Pinyin, explanation)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
