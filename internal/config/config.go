package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// PipelineConfig 管线业务配置，映射到 model.PipelineOptions
type PipelineConfig struct {
	IDColumn            string   `toml:"id_column"`
	DescriptionColumn   string   `toml:"description_column"`
	SupplierColumn      string   `toml:"supplier_column"`
	PrioritySupplier    string   `toml:"priority_supplier"`
	RequiredColumns     []string `toml:"required_columns"`
	ActiveCodes         []string `toml:"active_codes"`
	InactiveCodes       []string `toml:"inactive_codes"`
	DuplicateCodes      []string `toml:"duplicate_codes"`
	BlankPolicy         string   `toml:"blank_policy"`
	DateColumnKeywords  []string `toml:"date_column_keywords"`
	PercentKeywords     []string `toml:"percent_keywords"`
	SeparatorCharacters string   `toml:"separator_characters"`
	TextColumns         []string `toml:"text_columns"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	opts := model.DefaultOptions()
	return &AppConfig{
		Server: ServerConfig{
			Port:    20318,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Pipeline: PipelineConfig{
			IDColumn:            opts.IDColumn,
			DescriptionColumn:   opts.DescriptionColumn,
			SupplierColumn:      opts.SupplierColumn,
			PrioritySupplier:    opts.PrioritySupplier,
			RequiredColumns:     opts.RequiredColumns,
			ActiveCodes:         opts.ActiveCodes,
			InactiveCodes:       opts.InactiveCodes,
			DuplicateCodes:      opts.DuplicateCodes,
			BlankPolicy:         opts.BlankPolicy,
			DateColumnKeywords:  opts.DateColumnKeywords,
			PercentKeywords:     opts.PercentKeywords,
			SeparatorCharacters: opts.SeparatorCharacters,
			TextColumns:         opts.TextColumns,
		},
	}
}

// Options 将配置转换为只读管线选项
// 每次运行显式传入管线，不作为可变全局状态
func (c *AppConfig) Options() model.PipelineOptions {
	p := c.Pipeline
	return model.PipelineOptions{
		IDColumn:            p.IDColumn,
		DescriptionColumn:   p.DescriptionColumn,
		SupplierColumn:      p.SupplierColumn,
		PrioritySupplier:    p.PrioritySupplier,
		RequiredColumns:     p.RequiredColumns,
		ActiveCodes:         p.ActiveCodes,
		InactiveCodes:       p.InactiveCodes,
		DuplicateCodes:      p.DuplicateCodes,
		BlankPolicy:         p.BlankPolicy,
		DateColumnKeywords:  p.DateColumnKeywords,
		PercentKeywords:     p.PercentKeywords,
		SeparatorCharacters: p.SeparatorCharacters,
		TextColumns:         p.TextColumns,
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录的 config.toml 加载配置
// 文件不存在时使用默认配置
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("ETL_PRIORITY_SUPPLIER"); v != "" {
		config.Pipeline.PrioritySupplier = v
	}

	return config, nil
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// EnsureDataDir 确保数据目录及其子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
