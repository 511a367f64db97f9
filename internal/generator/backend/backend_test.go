package backend

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator/gentest"
)

const src = "src/main/java/com/example/tiendaonline"

func generate(t *testing.T, d *diagram.Diagram) map[string]string {
	t.Helper()
	b, err := New().Generate(context.Background(), gentest.Input(d))
	require.NoError(t, err)
	files := make(map[string]string, len(b.Artifacts))
	for _, a := range b.Artifacts {
		files[a.Path] = a.Content
	}
	return files
}

func TestGenerate_ProjectFiles(t *testing.T) {
	files := generate(t, gentest.OneToMany())

	for _, p := range []string{
		"pom.xml",
		"README.md",
		"src/main/resources/application.properties",
		src + "/TiendaOnlineApplication.java",
		src + "/exception/ResourceNotFoundException.java",
		src + "/exception/GlobalExceptionHandler.java",
		src + "/model/Usuario.java",
		src + "/dto/UsuarioDTO.java",
		src + "/repository/UsuarioRepository.java",
		src + "/service/UsuarioService.java",
		src + "/controller/UsuarioController.java",
		src + "/model/Pedido.java",
	} {
		assert.Contains(t, files, p)
	}

	assert.Contains(t, files["pom.xml"], "<groupId>com.example</groupId>")
	assert.Contains(t, files["pom.xml"], "<artifactId>tienda-online</artifactId>")
	assert.Contains(t, files["src/main/resources/application.properties"], "jdbc:mysql://localhost:3306/tienda_online")
}

func TestGenerate_ReferenceAndInverseCollection(t *testing.T) {
	files := generate(t, gentest.OneToMany())

	pedido := files[src+"/model/Pedido.java"]
	assert.Contains(t, pedido, "@ManyToOne(fetch = FetchType.LAZY, optional = false)")
	assert.Contains(t, pedido, `@JoinColumn(name = "usuario_id", nullable = false)`)
	assert.Contains(t, pedido, "private Usuario usuario;")
	assert.Contains(t, pedido, "import java.math.BigDecimal;")
	assert.Contains(t, pedido, "import java.time.LocalDate;")

	usuario := files[src+"/model/Usuario.java"]
	assert.Contains(t, usuario, `@OneToMany(mappedBy = "usuario")`)
	assert.Contains(t, usuario, "private List<Pedido> pedidos = new ArrayList<>();")
	assert.NotContains(t, usuario, "CascadeType.ALL")

	dto := files[src+"/dto/PedidoDTO.java"]
	assert.Contains(t, dto, "@NotNull\n    private Long usuarioId;")
	assert.Contains(t, dto, "this.usuarioId = entity.getUsuario() != null ? entity.getUsuario().getId() : null;")

	service := files[src+"/service/PedidoService.java"]
	assert.Contains(t, service, "private final UsuarioRepository usuarioRepository;")
	assert.Contains(t, service, "entity.setUsuario(dto.getUsuarioId() == null ? null : usuarioRepository.findById(dto.getUsuarioId())")

	controller := files[src+"/controller/PedidoController.java"]
	assert.Contains(t, controller, `@RequestMapping("/api/pedidos")`)
}

func TestGenerate_CompositionCascades(t *testing.T) {
	d := gentest.Composition()
	d.Title = "Tienda Online"
	files := generate(t, d)

	casa := files[src+"/model/Casa.java"]
	assert.Contains(t, casa, `@OneToMany(mappedBy = "casa", cascade = CascadeType.ALL, orphanRemoval = true)`)
	assert.Contains(t, casa, "private List<Habitacion> habitacions")
}

func TestGenerate_AuthForUserEntity(t *testing.T) {
	files := generate(t, gentest.OneToMany())

	for _, p := range []string{
		src + "/security/JwtService.java",
		src + "/security/JwtAuthenticationFilter.java",
		src + "/security/AppUserDetailsService.java",
		src + "/config/SecurityConfig.java",
		src + "/controller/AuthController.java",
		src + "/dto/LoginRequest.java",
		src + "/dto/RegisterRequest.java",
		src + "/dto/AuthResponse.java",
	} {
		assert.Contains(t, files, p)
	}
	assert.NotContains(t, files, src+"/config/WebConfig.java")

	auth := files[src+"/controller/AuthController.java"]
	assert.Contains(t, auth, `@PostMapping("/register")`)
	assert.Contains(t, auth, `@PostMapping("/login")`)
	assert.Contains(t, auth, "repository.existsByEmail(request.getEmail())")
	assert.Contains(t, auth, "user.setPassword(passwordEncoder.encode(request.getPassword()));")
	assert.Contains(t, auth, "user.setNombre(request.getNombre());")

	repo := files[src+"/repository/UsuarioRepository.java"]
	assert.Contains(t, repo, "Optional<Usuario> findByEmail(String email);")

	login := files[src+"/dto/LoginRequest.java"]
	assert.Contains(t, login, "private String email;")
	assert.Contains(t, login, "private String password;")

	dto := files[src+"/dto/UsuarioDTO.java"]
	assert.Contains(t, dto, "@JsonProperty(access = JsonProperty.Access.WRITE_ONLY)\n    private String password;")
	assert.NotContains(t, dto, "this.password = entity.getPassword()")

	assert.Contains(t, files["pom.xml"], "spring-boot-starter-security")
	assert.Contains(t, files["src/main/resources/application.properties"], "jwt.secret=${JWT_SECRET:")
}

func TestGenerate_NoAuthWithoutUser(t *testing.T) {
	d := gentest.Composition()
	d.Title = "Tienda Online"
	files := generate(t, d)

	assert.Contains(t, files, src+"/config/WebConfig.java")
	assert.NotContains(t, files, src+"/controller/AuthController.java")
	assert.NotContains(t, files["pom.xml"], "jjwt")
}

func TestGenerate_JoinedInheritance(t *testing.T) {
	d := gentest.Inheritance()
	d.Title = "Tienda Online"
	files := generate(t, d)

	animal := files[src+"/model/Animal.java"]
	assert.Contains(t, animal, "@Inheritance(strategy = InheritanceType.JOINED)")
	assert.Contains(t, animal, "private Long id;")

	perro := files[src+"/model/Perro.java"]
	assert.Contains(t, perro, `@PrimaryKeyJoinColumn(name = "animal_id")`)
	assert.Contains(t, perro, "public class Perro extends Animal {")
	assert.NotContains(t, perro, "private Long id;")

	dto := files[src+"/dto/PerroDTO.java"]
	assert.Contains(t, dto, "public class PerroDTO extends AnimalDTO {")
	assert.Contains(t, dto, "super.fill(entity);")
}

func TestGenerate_LinkingEntity(t *testing.T) {
	d := gentest.ManyToMany()
	d.Title = "Tienda Online"
	files := generate(t, d)

	model := files[src+"/model/CursoEstudiante.java"]
	require.NotEmpty(t, model)
	assert.Contains(t, model, `@Table(name = "curso_estudiante")`)
	assert.Contains(t, model, `@JoinColumn(name = "curso_id")`)
	assert.Contains(t, model, `@JoinColumn(name = "estudiante_id")`)
	assert.Contains(t, model, "@IdClass(CursoEstudiante.Key.class)")

	assert.NotContains(t, files[src+"/model/Curso.java"], "Estudiante")
	assert.NotContains(t, files[src+"/model/Estudiante.java"], "Curso")

	controller := files[src+"/controller/CursoEstudianteController.java"]
	assert.Contains(t, controller, `@RequestMapping("/api/curso-estudiantes")`)
	assert.Contains(t, controller, `@DeleteMapping("/{cursoId}/{estudianteId}")`)
}

func TestGenerate_StereotypeSkeletons(t *testing.T) {
	files := generate(t, gentest.Everything())

	svc, ok := files[src+"/service/NotificacionService.java"]
	require.True(t, ok)
	assert.Contains(t, svc, "@Service")
	assert.Contains(t, svc, "public void notificar(Usuario usuario) {")
	assert.Contains(t, svc, "import com.example.tiendaonline.model.Usuario;")
	assert.NotContains(t, files, src+"/model/NotificacionService.java")
}

func TestGenerate_JSONColumn(t *testing.T) {
	files := generate(t, gentest.Everything())

	pedido := files[src+"/model/Pedido.java"]
	assert.Contains(t, pedido, "@JdbcTypeCode(SqlTypes.JSON)\n    @Column(name = \"etiquetas\")\n    private List<String> etiquetas;")
}

func TestGenerate_Deterministic(t *testing.T) {
	first := generate(t, gentest.Everything())
	second := generate(t, gentest.Everything())
	assert.Equal(t, first, second)
}

func TestJwtSecretLength(t *testing.T) {
	s := jwtSecret("tienda-online")
	assert.Len(t, s, 64)
	assert.Equal(t, s, jwtSecret("tienda-online"))
	assert.False(t, strings.Contains(s, "-"))
}
