package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI      string
	IngestTopic string // Corpus ingestion topic
}

type AIConfig struct {
	EmbeddingProvider string // "local" or "openai"
	LocalBaseURL      string
	LocalModel        string
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string
	OllamaBaseURL     string
	IndexTable        string
	Temperature       float64
	MaxAnswerTokens   int
	TopK              int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
			IngestTopic: getEnv("INGEST_CORPUS_TOPIC_NAME", "INGEST_CORPUS_SECTION"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "local"),
			LocalBaseURL:      getEnv("LOCAL_EMBEDDING_BASE_URL", "http://localhost:11434"),
			LocalModel:        getEnv("LOCAL_EMBEDDING_MODEL", "all-minilm"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			IndexTable:        getEnv("VECTOR_INDEX_TABLE", "corpus_embeddings"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxAnswerTokens:   getEnvAsInt("LLM_MAX_ANSWER_TOKENS", 1000),
			TopK:              getEnvAsInt("RETRIEVAL_TOP_K", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
