package mapper

import (
	"errors"
	"fmt"

	"dddkit/pkg/logger"

	"go.uber.org/zap"
)

// ErrNoModules 注册入口被调用时一个模块都没有给出。
// 这是启动期配置错误，直接上抛，不降级。
var ErrNoModules = errors.New("at least one mapper module is required")

// Module 一个"代码单元"的映射器清单。
// 每个限界上下文导出一个 Module，把自己的映射器工厂集中暴露出来；
// 这是显式注册清单，替代运行时程序集扫描（编译期可见、可审计）。
type Module struct {
	// Name 模块名，只用于日志与诊断
	Name string

	// Candidates 候选映射器工厂，形如 func() *SomeMapper。
	// 不满足任一映射能力形状的候选会被跳过，不报错。
	Candidates []any
}

// AddModules 扫描模块的候选集并完成注册。
// 零个模块视为配置错误。同一能力实例化被多个模块重复注册时，
// 按注册表的后写覆盖语义处理，这里不做去重。
func (r *Registry) AddModules(modules ...Module) error {
	if len(modules) == 0 {
		return fmt.Errorf("mapper: %w", ErrNoModules)
	}

	for _, module := range modules {
		registered := 0
		for _, candidate := range module.Candidates {
			registered += r.addCandidate(candidate)
		}
		logger.Info("Mapper module registered",
			zap.String("module", module.Name),
			zap.Int("candidates", len(module.Candidates)),
			zap.Int("registrations", registered),
		)
	}
	return nil
}
