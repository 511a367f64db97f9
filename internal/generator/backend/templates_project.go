package backend

const tplPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0"
         xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
         xsi:schemaLocation="http://maven.apache.org/POM/4.0.0 https://maven.apache.org/xsd/maven-4.0.0.xsd">
    <modelVersion>4.0.0</modelVersion>

    <parent>
        <groupId>org.springframework.boot</groupId>
        <artifactId>spring-boot-starter-parent</artifactId>
        <version>3.3.4</version>
        <relativePath/>
    </parent>

    <groupId>[[ .Group ]]</groupId>
    <artifactId>[[ .Slug ]]</artifactId>
    <version>0.0.1-SNAPSHOT</version>
    <name>[[ .Name ]]</name>

    <properties>
        <java.version>17</java.version>
[[- if .Auth ]]
        <jjwt.version>0.12.6</jjwt.version>
[[- end ]]
    </properties>

    <dependencies>
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-web</artifactId>
        </dependency>
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-data-jpa</artifactId>
        </dependency>
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-validation</artifactId>
        </dependency>
[[- if .Auth ]]
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-security</artifactId>
        </dependency>
        <dependency>
            <groupId>io.jsonwebtoken</groupId>
            <artifactId>jjwt-api</artifactId>
            <version>${jjwt.version}</version>
        </dependency>
        <dependency>
            <groupId>io.jsonwebtoken</groupId>
            <artifactId>jjwt-impl</artifactId>
            <version>${jjwt.version}</version>
            <scope>runtime</scope>
        </dependency>
        <dependency>
            <groupId>io.jsonwebtoken</groupId>
            <artifactId>jjwt-jackson</artifactId>
            <version>${jjwt.version}</version>
            <scope>runtime</scope>
        </dependency>
[[- end ]]
        <dependency>
            <groupId>com.mysql</groupId>
            <artifactId>mysql-connector-j</artifactId>
            <scope>runtime</scope>
        </dependency>
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-test</artifactId>
            <scope>test</scope>
        </dependency>
    </dependencies>

    <build>
        <plugins>
            <plugin>
                <groupId>org.springframework.boot</groupId>
                <artifactId>spring-boot-maven-plugin</artifactId>
            </plugin>
        </plugins>
    </build>
</project>
`

const tplApplication = `package [[ .Package ]];

import org.springframework.boot.SpringApplication;
import org.springframework.boot.autoconfigure.SpringBootApplication;

@SpringBootApplication
public class [[ .App ]] {

    public static void main(String[] args) {
        SpringApplication.run([[ .App ]].class, args);
    }
}
`

const tplProperties = `spring.application.name=[[ .Slug ]]
server.port=${PORT:8080}

spring.datasource.url=${DB_URL:jdbc:mysql://localhost:3306/[[ .Database ]]?createDatabaseIfNotExist=true&useSSL=false&serverTimezone=UTC}
spring.datasource.username=${DB_USERNAME:root}
spring.datasource.password=${DB_PASSWORD:}

spring.jpa.hibernate.ddl-auto=${DDL_AUTO:update}
spring.jpa.open-in-view=false
spring.jpa.show-sql=false
[[- if .Auth ]]

jwt.secret=${JWT_SECRET:[[ .Secret ]]}
jwt.expiration=${JWT_EXPIRATION:86400000}
[[- end ]]
`

const tplNotFound = `package [[ .Package ]].exception;

public class ResourceNotFoundException extends RuntimeException {

    public ResourceNotFoundException(String resource, Object id) {
        super(resource + " not found: " + id);
    }
}
`

const tplExceptionHandler = `package [[ .Package ]].exception;

import org.springframework.dao.DataIntegrityViolationException;
import org.springframework.http.HttpStatus;
import org.springframework.http.ResponseEntity;
import org.springframework.web.bind.MethodArgumentNotValidException;
import org.springframework.web.bind.annotation.ExceptionHandler;
import org.springframework.web.bind.annotation.RestControllerAdvice;

import java.time.Instant;
import java.util.LinkedHashMap;
import java.util.Map;

@RestControllerAdvice
public class GlobalExceptionHandler {

    @ExceptionHandler(ResourceNotFoundException.class)
    public ResponseEntity<Map<String, Object>> handleNotFound(ResourceNotFoundException ex) {
        return body(HttpStatus.NOT_FOUND, ex.getMessage());
    }

    @ExceptionHandler(MethodArgumentNotValidException.class)
    public ResponseEntity<Map<String, Object>> handleValidation(MethodArgumentNotValidException ex) {
        Map<String, String> fields = new LinkedHashMap<>();
        ex.getBindingResult().getFieldErrors().forEach(err -> fields.put(err.getField(), err.getDefaultMessage()));
        ResponseEntity<Map<String, Object>> response = body(HttpStatus.BAD_REQUEST, "Validation failed");
        response.getBody().put("fields", fields);
        return response;
    }

    @ExceptionHandler(IllegalArgumentException.class)
    public ResponseEntity<Map<String, Object>> handleBadRequest(IllegalArgumentException ex) {
        return body(HttpStatus.BAD_REQUEST, ex.getMessage());
    }

    @ExceptionHandler(DataIntegrityViolationException.class)
    public ResponseEntity<Map<String, Object>> handleConflict(DataIntegrityViolationException ex) {
        return body(HttpStatus.CONFLICT, "Data integrity violation");
    }

    private ResponseEntity<Map<String, Object>> body(HttpStatus status, String message) {
        Map<String, Object> body = new LinkedHashMap<>();
        body.put("timestamp", Instant.now().toString());
        body.put("status", status.value());
        body.put("error", status.getReasonPhrase());
        body.put("message", message);
        return ResponseEntity.status(status).body(body);
    }
}
`

const tplWebConfig = `package [[ .Package ]].config;

import org.springframework.context.annotation.Configuration;
import org.springframework.web.servlet.config.annotation.CorsRegistry;
import org.springframework.web.servlet.config.annotation.WebMvcConfigurer;

@Configuration
public class WebConfig implements WebMvcConfigurer {

    @Override
    public void addCorsMappings(CorsRegistry registry) {
        registry.addMapping("/api/**")
                .allowedOriginPatterns("*")
                .allowedMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
                .allowedHeaders("*");
    }
}
`

const tplReadme = `# [[ .Name ]] backend

Spring Boot 3 REST API.

## Running

    mvn spring-boot:run

The database connection is read from DB_URL, DB_USERNAME and DB_PASSWORD.
The schema script under database/schema.sql creates the same tables.

## Endpoints
[[ range .Resources ]]
- [[ . ]]
[[- end ]]
`

const tplJwtService = `package [[ .Package ]].security;

import io.jsonwebtoken.JwtException;
import io.jsonwebtoken.Jwts;
import io.jsonwebtoken.security.Keys;
import org.springframework.beans.factory.annotation.Value;
import org.springframework.security.core.userdetails.UserDetails;
import org.springframework.stereotype.Service;

import javax.crypto.SecretKey;
import java.nio.charset.StandardCharsets;
import java.util.Date;

@Service
public class JwtService {

    @Value("${jwt.secret}")
    private String secret;

    @Value("${jwt.expiration}")
    private long expiration;

    public String generateToken(String subject) {
        Date now = new Date();
        return Jwts.builder()
                .subject(subject)
                .issuedAt(now)
                .expiration(new Date(now.getTime() + expiration))
                .signWith(key())
                .compact();
    }

    public String extractSubject(String token) {
        return Jwts.parser()
                .verifyWith(key())
                .build()
                .parseSignedClaims(token)
                .getPayload()
                .getSubject();
    }

    public boolean isTokenValid(String token, UserDetails userDetails) {
        try {
            return extractSubject(token).equals(userDetails.getUsername());
        } catch (JwtException | IllegalArgumentException ex) {
            return false;
        }
    }

    private SecretKey key() {
        return Keys.hmacShaKeyFor(secret.getBytes(StandardCharsets.UTF_8));
    }
}
`

const tplJwtFilter = `package [[ .Package ]].security;

import io.jsonwebtoken.JwtException;
import jakarta.servlet.FilterChain;
import jakarta.servlet.ServletException;
import jakarta.servlet.http.HttpServletRequest;
import jakarta.servlet.http.HttpServletResponse;
import org.springframework.security.authentication.UsernamePasswordAuthenticationToken;
import org.springframework.security.core.context.SecurityContextHolder;
import org.springframework.security.core.userdetails.UserDetails;
import org.springframework.security.core.userdetails.UserDetailsService;
import org.springframework.security.core.userdetails.UsernameNotFoundException;
import org.springframework.security.web.authentication.WebAuthenticationDetailsSource;
import org.springframework.stereotype.Component;
import org.springframework.web.filter.OncePerRequestFilter;

import java.io.IOException;

@Component
public class JwtAuthenticationFilter extends OncePerRequestFilter {

    private static final String PREFIX = "Bearer ";

    private final JwtService jwtService;
    private final UserDetailsService userDetailsService;

    public JwtAuthenticationFilter(JwtService jwtService, UserDetailsService userDetailsService) {
        this.jwtService = jwtService;
        this.userDetailsService = userDetailsService;
    }

    @Override
    protected void doFilterInternal(HttpServletRequest request, HttpServletResponse response, FilterChain chain)
            throws ServletException, IOException {
        String header = request.getHeader("Authorization");
        if (header == null || !header.startsWith(PREFIX)) {
            chain.doFilter(request, response);
            return;
        }

        String token = header.substring(PREFIX.length());
        try {
            String subject = jwtService.extractSubject(token);
            if (subject != null && SecurityContextHolder.getContext().getAuthentication() == null) {
                UserDetails user = userDetailsService.loadUserByUsername(subject);
                if (jwtService.isTokenValid(token, user)) {
                    UsernamePasswordAuthenticationToken auth =
                            new UsernamePasswordAuthenticationToken(user, null, user.getAuthorities());
                    auth.setDetails(new WebAuthenticationDetailsSource().buildDetails(request));
                    SecurityContextHolder.getContext().setAuthentication(auth);
                }
            }
        } catch (JwtException | UsernameNotFoundException ex) {
            SecurityContextHolder.clearContext();
        }
        chain.doFilter(request, response);
    }
}
`

const tplUserDetailsService = `package [[ .Package ]].security;

import [[ .Package ]].repository.[[ .User ]]Repository;
import org.springframework.security.core.userdetails.UserDetails;
import org.springframework.security.core.userdetails.UserDetailsService;
import org.springframework.security.core.userdetails.UsernameNotFoundException;
import org.springframework.stereotype.Service;

@Service
public class AppUserDetailsService implements UserDetailsService {

    private final [[ .User ]]Repository repository;

    public AppUserDetailsService([[ .User ]]Repository repository) {
        this.repository = repository;
    }

    @Override
    public UserDetails loadUserByUsername(String [[ .Credential.Name ]]) throws UsernameNotFoundException {
        return repository.findBy[[ ucfirst .Credential.Name ]]([[ .Credential.Name ]])
                .map(user -> org.springframework.security.core.userdetails.User
                        .withUsername(String.valueOf(user.[[ .Credential.Getter ]]()))
                        .password(user.[[ .Secret.Getter ]]())
                        .authorities("USER")
                        .build())
                .orElseThrow(() -> new UsernameNotFoundException("[[ .User ]] not found: " + [[ .Credential.Name ]]));
    }
}
`

const tplSecurityConfig = `package [[ .Package ]].config;

import [[ .Package ]].security.JwtAuthenticationFilter;
import org.springframework.context.annotation.Bean;
import org.springframework.context.annotation.Configuration;
import org.springframework.security.authentication.AuthenticationManager;
import org.springframework.security.config.Customizer;
import org.springframework.security.config.annotation.authentication.configuration.AuthenticationConfiguration;
import org.springframework.security.config.annotation.web.builders.HttpSecurity;
import org.springframework.security.config.annotation.web.configuration.EnableWebSecurity;
import org.springframework.security.config.annotation.web.configurers.AbstractHttpConfigurer;
import org.springframework.security.config.http.SessionCreationPolicy;
import org.springframework.security.crypto.bcrypt.BCryptPasswordEncoder;
import org.springframework.security.crypto.password.PasswordEncoder;
import org.springframework.security.web.SecurityFilterChain;
import org.springframework.security.web.authentication.UsernamePasswordAuthenticationFilter;
import org.springframework.web.cors.CorsConfiguration;
import org.springframework.web.cors.CorsConfigurationSource;
import org.springframework.web.cors.UrlBasedCorsConfigurationSource;

import java.util.List;

@Configuration
@EnableWebSecurity
public class SecurityConfig {

    private final JwtAuthenticationFilter jwtAuthenticationFilter;

    public SecurityConfig(JwtAuthenticationFilter jwtAuthenticationFilter) {
        this.jwtAuthenticationFilter = jwtAuthenticationFilter;
    }

    @Bean
    public SecurityFilterChain securityFilterChain(HttpSecurity http) throws Exception {
        http
                .csrf(AbstractHttpConfigurer::disable)
                .cors(Customizer.withDefaults())
                .sessionManagement(session -> session.sessionCreationPolicy(SessionCreationPolicy.STATELESS))
                .authorizeHttpRequests(auth -> auth
                        .requestMatchers("/api/auth/**").permitAll()
                        .anyRequest().authenticated())
                .addFilterBefore(jwtAuthenticationFilter, UsernamePasswordAuthenticationFilter.class);
        return http.build();
    }

    @Bean
    public PasswordEncoder passwordEncoder() {
        return new BCryptPasswordEncoder();
    }

    @Bean
    public AuthenticationManager authenticationManager(AuthenticationConfiguration configuration) throws Exception {
        return configuration.getAuthenticationManager();
    }

    @Bean
    public CorsConfigurationSource corsConfigurationSource() {
        CorsConfiguration cors = new CorsConfiguration();
        cors.setAllowedOriginPatterns(List.of("*"));
        cors.setAllowedMethods(List.of("GET", "POST", "PUT", "DELETE", "OPTIONS"));
        cors.setAllowedHeaders(List.of("*"));
        UrlBasedCorsConfigurationSource source = new UrlBasedCorsConfigurationSource();
        source.registerCorsConfiguration("/**", cors);
        return source;
    }
}
`

const tplAuthController = `package [[ .Package ]].controller;

import [[ .Package ]].dto.AuthResponse;
import [[ .Package ]].dto.LoginRequest;
import [[ .Package ]].dto.RegisterRequest;
import [[ .Package ]].model.[[ .User ]];
import [[ .Package ]].repository.[[ .User ]]Repository;
import [[ .Package ]].security.JwtService;
import jakarta.validation.Valid;
import org.springframework.http.HttpStatus;
import org.springframework.http.ResponseEntity;
import org.springframework.security.authentication.AuthenticationManager;
import org.springframework.security.authentication.UsernamePasswordAuthenticationToken;
import org.springframework.security.crypto.password.PasswordEncoder;
import org.springframework.web.bind.annotation.PostMapping;
import org.springframework.web.bind.annotation.RequestBody;
import org.springframework.web.bind.annotation.RequestMapping;
import org.springframework.web.bind.annotation.RestController;

@RestController
@RequestMapping("/api/auth")
public class AuthController {

    private final [[ .User ]]Repository repository;
    private final PasswordEncoder passwordEncoder;
    private final AuthenticationManager authenticationManager;
    private final JwtService jwtService;

    public AuthController([[ .User ]]Repository repository, PasswordEncoder passwordEncoder,
                          AuthenticationManager authenticationManager, JwtService jwtService) {
        this.repository = repository;
        this.passwordEncoder = passwordEncoder;
        this.authenticationManager = authenticationManager;
        this.jwtService = jwtService;
    }

    @PostMapping("/register")
    public ResponseEntity<AuthResponse> register(@Valid @RequestBody RegisterRequest request) {
        if (repository.existsBy[[ ucfirst .Credential.Name ]](request.[[ .Credential.Getter ]]())) {
            return ResponseEntity.status(HttpStatus.CONFLICT).build();
        }
        [[ .User ]] user = new [[ .User ]]();
        user.[[ .Credential.Setter ]](request.[[ .Credential.Getter ]]());
        user.[[ .Secret.Setter ]](passwordEncoder.encode(request.[[ .Secret.Getter ]]()));
[[- range .Fields ]]
        user.[[ .Setter ]](request.[[ .Getter ]]());
[[- end ]]
        repository.save(user);
        String subject = String.valueOf(user.[[ .Credential.Getter ]]());
        return ResponseEntity.status(HttpStatus.CREATED).body(new AuthResponse(jwtService.generateToken(subject), subject));
    }

    @PostMapping("/login")
    public AuthResponse login(@Valid @RequestBody LoginRequest request) {
        String subject = String.valueOf(request.[[ .Credential.Getter ]]());
        authenticationManager.authenticate(
                new UsernamePasswordAuthenticationToken(subject, request.[[ .Secret.Getter ]]()));
        return new AuthResponse(jwtService.generateToken(subject), subject);
    }
}
`

const tplLoginRequest = `package [[ .Package ]].dto;

import jakarta.validation.constraints.NotBlank;
import jakarta.validation.constraints.NotNull;
[[- range .Imports ]]
import [[ . ]];
[[- end ]]

public class LoginRequest {

    [[ if eq .Credential.Type "String" ]]@NotBlank[[ else ]]@NotNull[[ end ]]
    private [[ .Credential.Type ]] [[ .Credential.Name ]];

    [[ if eq .Secret.Type "String" ]]@NotBlank[[ else ]]@NotNull[[ end ]]
    private [[ .Secret.Type ]] [[ .Secret.Name ]];

    public [[ .Credential.Type ]] [[ .Credential.Getter ]]() {
        return [[ .Credential.Name ]];
    }

    public void [[ .Credential.Setter ]]([[ .Credential.Type ]] [[ .Credential.Name ]]) {
        this.[[ .Credential.Name ]] = [[ .Credential.Name ]];
    }

    public [[ .Secret.Type ]] [[ .Secret.Getter ]]() {
        return [[ .Secret.Name ]];
    }

    public void [[ .Secret.Setter ]]([[ .Secret.Type ]] [[ .Secret.Name ]]) {
        this.[[ .Secret.Name ]] = [[ .Secret.Name ]];
    }
}
`

const tplRegisterRequest = `package [[ .Package ]].dto;

import jakarta.validation.constraints.NotBlank;
import jakarta.validation.constraints.NotNull;
[[- range .Imports ]]
import [[ . ]];
[[- end ]]

public class RegisterRequest {

    [[ if eq .Credential.Type "String" ]]@NotBlank[[ else ]]@NotNull[[ end ]]
    private [[ .Credential.Type ]] [[ .Credential.Name ]];

    [[ if eq .Secret.Type "String" ]]@NotBlank[[ else ]]@NotNull[[ end ]]
    private [[ .Secret.Type ]] [[ .Secret.Name ]];
[[- range .Fields ]]

    private [[ .Type ]] [[ .Name ]];
[[- end ]]

    public [[ .Credential.Type ]] [[ .Credential.Getter ]]() {
        return [[ .Credential.Name ]];
    }

    public void [[ .Credential.Setter ]]([[ .Credential.Type ]] [[ .Credential.Name ]]) {
        this.[[ .Credential.Name ]] = [[ .Credential.Name ]];
    }

    public [[ .Secret.Type ]] [[ .Secret.Getter ]]() {
        return [[ .Secret.Name ]];
    }

    public void [[ .Secret.Setter ]]([[ .Secret.Type ]] [[ .Secret.Name ]]) {
        this.[[ .Secret.Name ]] = [[ .Secret.Name ]];
    }
[[- range .Fields ]]

    public [[ .Type ]] [[ .Getter ]]() {
        return [[ .Name ]];
    }

    public void [[ .Setter ]]([[ .Type ]] [[ .Name ]]) {
        this.[[ .Name ]] = [[ .Name ]];
    }
[[- end ]]
}
`

const tplAuthResponse = `package [[ .Package ]].dto;

public record AuthResponse(String token, String subject) {
}
`
