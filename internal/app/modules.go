package app

import (
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/compare"
	"github.com/vk/nodeflowgo/modules/constants"
	"github.com/vk/nodeflowgo/modules/core"
	"github.com/vk/nodeflowgo/modules/logic"
	"github.com/vk/nodeflowgo/modules/mathops"
	"github.com/vk/nodeflowgo/modules/world"
)

// coreModules is the definitive list of all modules that are compiled into
// the nodeflow binary. core registers the data types the others use, so it
// comes first.
var coreModules = []registry.Module{
	&core.Module{},
	&constants.Module{},
	&logic.Module{},
	&mathops.Module{},
	&compare.Module{},
	&world.Module{},
}
