package renderer

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/engine/target"
	"github.com/cogentcore/webgpu/wgpu"
)

// blitShader draws one oversized triangle covering the screen and samples the
// uploaded framebuffer with v = 0 at the top.
const blitShader = `
@group(0) @binding(0) var frameTexture: texture_2d<f32>;
@group(0) @binding(1) var frameSampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    var out: VertexOutput;
    let x = f32((index << 1u) & 2u);
    let y = f32(index & 2u);
    out.position = vec4<f32>(x * 2.0 - 1.0, 1.0 - y * 2.0, 0.0, 1.0);
    out.uv = vec2<f32>(x, y);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(frameTexture, frameSampler, in.uv);
}
`

type wgpuPresenter struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	sampler         *wgpu.Sampler

	// recreated on resize
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	bindGroup    *wgpu.BindGroup
	width        int
	height       int
	pixels       []byte
}

var _ Presenter = &wgpuPresenter{}

// NewWGPUPresenter creates a WebGPU presenter for a window surface. The surface is not
// configured until the first Resize, which NewRenderer performs.
//
// Parameters:
//   - surfaceDescriptor: the platform surface of the window
//   - forceFallbackAdapter: true to request a CPU/software adapter
//
// Returns:
//   - Presenter: the presenter
//   - error: an error if no adapter or device could be created
func NewWGPUPresenter(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (Presenter, error) {
	runtime.LockOSThread()
	p := &wgpuPresenter{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
	}
	p.surface = p.instance.CreateSurface(surfaceDescriptor)

	a, err := p.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    p.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	p.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{Label: "Presenter Device"})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	p.device = d
	p.queue = d.GetQueue()

	capabilities := p.surface.GetCapabilities(p.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}
	p.surfaceFormat = capabilities.Formats[0]

	if err := p.createPipeline(); err != nil {
		return nil, err
	}
	return p, nil
}

// createPipeline builds the blit pipeline, its bind group layout and sampler.
func (p *wgpuPresenter) createPipeline() error {
	module, err := p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Blit Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: blitShader,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create blit shader: %w", err)
	}
	defer module.Release()

	p.bindGroupLayout, err = p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Blit Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create blit bind group layout: %w", err)
	}

	layout, err := p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Blit Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create blit pipeline layout: %w", err)
	}
	defer layout.Release()

	p.pipeline, err = p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Blit Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    p.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create blit pipeline: %w", err)
	}

	p.sampler, err = p.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Blit Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create blit sampler: %w", err)
	}
	return nil
}

func (p *wgpuPresenter) SetPresentMode(mode PresentMode) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		p.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		p.presentMode = wgpu.PresentModeImmediate
	}
}

func (p *wgpuPresenter) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	capabilities := p.surface.GetCapabilities(p.adapter)
	p.surface.Configure(p.adapter, p.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      p.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: p.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	p.releaseFrame()

	tex, err := p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Framebuffer Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		log.Printf("[Presenter] failed to create framebuffer texture: %v", err)
		return
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		log.Printf("[Presenter] failed to create framebuffer view: %v", err)
		return
	}
	bg, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Blit Bind Group",
		Layout: p.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: p.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		log.Printf("[Presenter] failed to create blit bind group: %v", err)
		return
	}

	p.frameTexture, p.frameView, p.bindGroup = tex, view, bg
	p.width, p.height = width, height
}

// releaseFrame frees the size-dependent resources. Caller must hold the mutex.
func (p *wgpuPresenter) releaseFrame() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.frameView != nil {
		p.frameView.Release()
		p.frameView = nil
	}
	if p.frameTexture != nil {
		p.frameTexture.Release()
		p.frameTexture = nil
	}
	p.width, p.height = 0, 0
}

func (p *wgpuPresenter) Present(fb *target.RenderTarget) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.frameTexture == nil {
		return fmt.Errorf("presenter has no surface configured")
	}
	if fb.Width() != p.width || fb.Height() != p.height {
		return fmt.Errorf("framebuffer %dx%d does not match surface %dx%d: %w",
			fb.Width(), fb.Height(), p.width, p.height, target.ErrSizeMismatch)
	}

	p.pixels = fb.RGBA8(p.pixels)
	p.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  p.frameTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		p.pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(p.width) * 4,
			RowsPerImage: uint32(p.height),
		},
		&wgpu.Extent3D{
			Width:              uint32(p.width),
			Height:             uint32(p.height),
			DepthOrArrayLayers: 1,
		},
	)

	surfaceTexture, err := p.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := p.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	p.queue.Submit(commandBuffer)
	p.surface.Present()
	return nil
}

func (p *wgpuPresenter) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseFrame()
	if p.sampler != nil {
		p.sampler.Release()
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
	}
	p.device.Release()
	p.adapter.Release()
	p.surface.Release()
	p.instance.Release()
}
